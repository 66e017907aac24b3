// Package mapview builds the interactive Leaflet map written at the end of a run.
package mapview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/electronjoe/photomap/internal/geotag"
)

// DefaultCenter is a country-level view of Mexico.
var DefaultCenter = geotag.Coordinates{Latitude: 23.6345, Longitude: -102.5528}

const DefaultZoom = 6

// TileLayer is the base layer drawn under the markers.
type TileLayer struct {
	URL         string
	Attribution string
	MaxZoom     int
}

var OpenStreetMap = TileLayer{
	URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
	MaxZoom:     19,
}

// Icon is a Font Awesome glyph on a colored marker.
type Icon struct {
	Color string
	Glyph string
}

var CameraIcon = Icon{Color: "red", Glyph: "camera"}

// Marker is one point on the map.
type Marker struct {
	Location geotag.Coordinates
	Popup    template.HTML
	Tooltip  string // plain text
	Icon     Icon
}

// Map is the map canvas. The zero value is not usable; call New.
type Map struct {
	Title   string
	Center  geotag.Coordinates
	Zoom    int
	Tiles   TileLayer
	markers []Marker
}

// New returns an empty map.
func New(center geotag.Coordinates, zoom int, tiles TileLayer) *Map {
	return &Map{
		Title:  "Photo map",
		Center: center,
		Zoom:   zoom,
		Tiles:  tiles,
	}
}

func (m *Map) AddMarker(mk Marker) {
	m.markers = append(m.markers, mk)
}

// Markers returns a copy of the markers added so far.
func (m *Map) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

//go:embed map.html.tmpl
var mapTemplateText string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateText))

type markerJSON struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
	Color   string  `json:"color"`
	Glyph   string  `json:"glyph"`
}

// Render writes the map as a standalone HTML document.
func (m *Map) Render(w io.Writer) error {
	markers := make([]markerJSON, 0, len(m.markers))
	for _, mk := range m.markers {
		markers = append(markers, markerJSON{
			Lat:     mk.Location.Latitude,
			Lon:     mk.Location.Longitude,
			Popup:   string(mk.Popup),
			// Leaflet inserts string tooltips as HTML.
			Tooltip: html.EscapeString(mk.Tooltip),
			Color:   mk.Icon.Color,
			Glyph:   mk.Icon.Glyph,
		})
	}

	data := struct {
		Title   string
		Center  geotag.Coordinates
		Zoom    int
		Tiles   TileLayer
		Markers []markerJSON
	}{m.Title, m.Center, m.Zoom, m.Tiles, markers}

	if err := mapTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// Save renders the map to path, replacing any existing file.
func (m *Map) Save(path string) error {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace map: %w", err)
	}
	return nil
}
