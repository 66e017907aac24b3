// Package photomap turns a directory of photos into a map of where they were taken.
package photomap

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/electronjoe/photomap/internal/geotag"
	"github.com/electronjoe/photomap/internal/mapview"
	"github.com/electronjoe/photomap/internal/photo"
	"github.com/electronjoe/photomap/internal/report"
)

// ErrSourceNotFound is returned when the source directory does not exist.
var ErrSourceNotFound = errors.New("source directory not found")

// Locator extracts coordinates from one photo. *geotag.Extractor implements it.
type Locator interface {
	Locate(path string) geotag.Result
}

// Options configures one run.
type Options struct {
	SourceDir  string
	OutputPath string
	// ReportPath enables the spreadsheet report when not empty.
	ReportPath string
	Center     geotag.Coordinates
	Zoom       int
	Tiles      mapview.TileLayer
}

// DefaultOptions reads ./photos and writes ./viewer.html.
func DefaultOptions() Options {
	return Options{
		SourceDir:  "photos",
		OutputPath: "viewer.html",
		Center:     mapview.DefaultCenter,
		Zoom:       mapview.DefaultZoom,
		Tiles:      mapview.OpenStreetMap,
	}
}

// Stats counts the photos seen during a run.
type Stats struct {
	Processed  int
	WithGPS    int
	WithoutGPS int
}

// Result is what a run produced.
type Result struct {
	Map   *mapview.Map
	Stats Stats
	// Located holds the geotagged photos in directory order.
	Located []geotag.Result
	// Written is false when no photo had GPS data and nothing was saved.
	Written bool
}

// Builder runs the scan and assembles the map.
type Builder struct {
	locator Locator
	logger  *slog.Logger
}

// NewBuilder returns a Builder. A nil logger means slog.Default.
func NewBuilder(locator Locator, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{locator: locator, logger: logger}
}

// Build scans opts.SourceDir, adds a marker per geotagged photo and saves the
// map to opts.OutputPath. When no photo is geotagged the map is returned
// without being saved.
func (b *Builder) Build(opts Options) (*Result, error) {
	info, err := os.Stat(opts.SourceDir)
	if err != nil || !info.IsDir() {
		b.logger.Error("source directory does not exist", "dir", opts.SourceDir)
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, opts.SourceDir)
	}

	m := mapview.New(opts.Center, opts.Zoom, opts.Tiles)
	res := &Result{Map: m}

	photos, err := photo.List(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	var rows []report.Row
	for _, p := range photos {
		res.Stats.Processed++

		located := b.locator.Locate(p.FilePath)
		coords, ok := located.Located()
		if !ok {
			res.Stats.WithoutGPS++
			continue
		}
		res.Stats.WithGPS++
		res.Located = append(res.Located, located)
		rows = append(rows, report.Row{Name: p.Name, Path: p.FilePath, Coordinates: coords})

		popup, err := b.popup(p, located, opts.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("popup for %s: %w", p.FilePath, err)
		}
		m.AddMarker(mapview.Marker{
			Location: coords,
			Popup:    popup,
			Tooltip:  p.Name,
			Icon:     mapview.CameraIcon,
		})
	}

	b.logger.Info("photos processed", "count", res.Stats.Processed)
	b.logger.Info("photos with GPS", "count", res.Stats.WithGPS)
	b.logger.Info("photos without GPS", "count", res.Stats.WithoutGPS)

	if res.Stats.WithGPS == 0 {
		b.logger.Warn("no photos with GPS data found", "dir", opts.SourceDir)
		return res, nil
	}

	if err := m.Save(opts.OutputPath); err != nil {
		return nil, err
	}
	res.Written = true
	b.logger.Info("map saved", "path", opts.OutputPath)

	if opts.ReportPath != "" {
		if err := report.Write(opts.ReportPath, rows); err != nil {
			return nil, err
		}
		b.logger.Info("report saved", "path", opts.ReportPath)
	}

	return res, nil
}

func (b *Builder) popup(p photo.Photo, located geotag.Result, outputPath string) (template.HTML, error) {
	popup := mapview.Popup{
		Name:        p.Name,
		Src:         mapview.ImageSrc(p.FilePath, outputPath),
		Coordinates: located.Coordinates,
	}
	if w, h, err := photo.Dimensions(p.FilePath); err == nil {
		popup.Width, popup.Height = w, h
	} else {
		b.logger.Debug("could not read dimensions", "path", p.FilePath, "error", err)
	}
	if located.Altitude != nil {
		popup.Altitude, popup.HasAltitude = *located.Altitude, true
	}
	return popup.HTML()
}
