// Package geotag reads GPS coordinates from the EXIF metadata of photos.
package geotag

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// Outcome classifies a Result.
type Outcome int

const (
	Located Outcome = iota
	NoMetadata
	NoGPS
	IncompleteGPS
	Failed
)

var outcomeNames = [...]string{
	Located:       "located",
	NoMetadata:    "no_metadata",
	NoGPS:         "no_gps",
	IncompleteGPS: "incomplete_gps",
	Failed:        "failed",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Result is the outcome of locating one photo. Coordinates are only
// meaningful when Outcome is Located; Err is set for every other outcome.
type Result struct {
	Path        string      `json:"path"`
	Outcome     Outcome     `json:"outcome"`
	Coordinates Coordinates `json:"coordinates"`
	Altitude    *float64    `json:"altitude,omitempty"`
	Err         error       `json:"-"`
}

// Located returns the coordinates and true if the photo was geotagged.
func (r Result) Located() (Coordinates, bool) {
	return r.Coordinates, r.Outcome == Located
}

// Extractor locates photos from their EXIF GPS block.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor returns an Extractor that logs to logger, or to slog.Default when nil.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Locate opens the file at path and extracts its coordinates. It never
// returns an error: every failure becomes a non-Located Result.
func (e *Extractor) Locate(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return e.failed(path, fmt.Errorf("open: %w", err))
	}
	defer f.Close()

	return e.LocateReader(path, f)
}

// LocateReader is Locate for an already open image; name is used for logging.
func (e *Extractor) LocateReader(name string, r io.Reader) (res Result) {
	// goexif panics on some truncated files
	defer func() {
		if p := recover(); p != nil {
			res = e.failed(name, fmt.Errorf("decode panic: %v", p))
		}
	}()

	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		cause := ErrNoMetadata
		if err != nil {
			cause = fmt.Errorf("%w: %v", ErrNoMetadata, err)
		}
		e.logger.Info("no EXIF metadata", "path", name, "reason", err)
		return Result{Path: name, Outcome: NoMetadata, Err: cause}
	}

	block, err := ReadBlock(x)
	switch {
	case errors.Is(err, ErrNoGPS):
		e.logger.Warn("no GPS data", "path", name)
		return Result{Path: name, Outcome: NoGPS, Err: err}
	case errors.Is(err, ErrNoMetadata):
		e.logger.Info("no EXIF metadata", "path", name)
		return Result{Path: name, Outcome: NoMetadata, Err: err}
	case err != nil:
		return e.failed(name, err)
	}

	coords, err := block.Coordinates()
	if errors.Is(err, ErrIncompleteGPS) {
		e.logger.Warn("incomplete GPS data", "path", name, "error", err)
		return Result{Path: name, Outcome: IncompleteGPS, Err: err}
	}
	if err != nil {
		return e.failed(name, err)
	}

	res = Result{Path: name, Outcome: Located, Coordinates: coords}
	if alt, ok := block.Altitude(); ok {
		res.Altitude = &alt
	}
	e.logger.Info("coordinates extracted", "path", name, "coordinates", coords.String())
	return res
}

func (e *Extractor) failed(path string, err error) Result {
	e.logger.Error("failed to process photo", "path", path, "error", err)
	return Result{Path: path, Outcome: Failed, Err: err}
}
