package mapview

import (
	"bytes"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/electronjoe/photomap/internal/geotag"
)

// Popup describes the contents of a photo marker's popup.
type Popup struct {
	Name        string
	Src         string
	Coordinates geotag.Coordinates
	Width       int
	Height      int
	Altitude    float64
	HasAltitude bool
}

var popupTemplate = template.Must(template.New("popup").Funcs(template.FuncMap{
	"dms": geotag.FormatDMS,
}).Parse(`<div style="text-align: center;">
<h4>{{.Name}}</h4>
<img src="{{.Src}}" width="300px" style="max-height: 300px; object-fit: contain;">
<p><strong>Coordinates:</strong><br>
Lat: {{printf "%.6f" .Coordinates.Latitude}}<br>
Lon: {{printf "%.6f" .Coordinates.Longitude}}<br>
{{dms .Coordinates.Latitude 0}} {{dms .Coordinates.Longitude 1}}
{{- if .Width}}<br>
{{.Width}} &times; {{.Height}} px{{end}}
{{- if .HasAltitude}}<br>
Altitude: {{printf "%.1f" .Altitude}} m{{end}}</p>
</div>`))

// HTML renders the popup.
func (p Popup) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ImageSrc returns the reference to photoPath as seen from a document saved
// at outputPath, escaped for use as a relative URL. It falls back to
// photoPath when no relative path exists.
func ImageSrc(photoPath, outputPath string) string {
	absPhoto, err := filepath.Abs(photoPath)
	if err != nil {
		return relativeURL(photoPath)
	}
	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return relativeURL(photoPath)
	}
	rel, err := filepath.Rel(filepath.Dir(absOut), absPhoto)
	if err != nil {
		return relativeURL(photoPath)
	}
	return relativeURL(rel)
}

// relativeURL percent-encodes a file path so '#', '?' and spaces stay part
// of the path. A colon in the first segment would read as a scheme, so the
// path is anchored with "./".
func relativeURL(path string) string {
	p := filepath.ToSlash(path)
	first, _, _ := strings.Cut(p, "/")
	if strings.Contains(first, ":") {
		p = "./" + p
	}
	return (&url.URL{Path: p}).String()
}
