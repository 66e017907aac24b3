package photomap_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/electronjoe/photomap/internal/geotag"
	"github.com/electronjoe/photomap/internal/geotag/geotagtest"
	"github.com/electronjoe/photomap/internal/photomap"
)

// --- Mock Locator ---

type mockLocator struct {
	results map[string]geotag.Result
	calls   []string
}

func (m *mockLocator) Locate(path string) geotag.Result {
	m.calls = append(m.calls, filepath.Base(path))
	if r, ok := m.results[filepath.Base(path)]; ok {
		r.Path = path
		return r
	}
	return geotag.Result{Path: path, Outcome: geotag.NoMetadata, Err: geotag.ErrNoMetadata}
}

func located(lat, lon float64) geotag.Result {
	return geotag.Result{Outcome: geotag.Located, Coordinates: geotag.Coordinates{Latitude: lat, Longitude: lon}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func options(t *testing.T, src string) photomap.Options {
	t.Helper()
	opts := photomap.DefaultOptions()
	opts.SourceDir = src
	opts.OutputPath = filepath.Join(t.TempDir(), "viewer.html")
	return opts
}

func TestBuildMissingDirectory(t *testing.T) {
	opts := options(t, filepath.Join(t.TempDir(), "photos"))
	b := photomap.NewBuilder(&mockLocator{}, discardLogger())

	res, err := b.Build(opts)
	if !errors.Is(err, photomap.ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
	if _, err := os.Stat(opts.OutputPath); !os.IsNotExist(err) {
		t.Errorf("artifact written for missing directory: %v", err)
	}
}

func TestBuildSourceIsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photos")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := photomap.NewBuilder(&mockLocator{}, discardLogger()).Build(options(t, path))
	if !errors.Is(err, photomap.ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
	}
}

func TestBuildEmptyDirectory(t *testing.T) {
	opts := options(t, t.TempDir())

	res, err := photomap.NewBuilder(&mockLocator{}, discardLogger()).Build(opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Stats != (photomap.Stats{}) {
		t.Errorf("stats = %+v, want zero", res.Stats)
	}
	if res.Written {
		t.Error("Written = true for an empty directory")
	}
	if res.Map == nil || len(res.Map.Markers()) != 0 {
		t.Errorf("map = %+v, want empty map", res.Map)
	}
	if _, err := os.Stat(opts.OutputPath); !os.IsNotExist(err) {
		t.Errorf("artifact written for empty directory: %v", err)
	}
}

func TestBuildNoMetadata(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "plain.jpg")
	opts := options(t, src)

	res, err := photomap.NewBuilder(&mockLocator{}, discardLogger()).Build(opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := photomap.Stats{Processed: 1, WithoutGPS: 1}
	if res.Stats != want {
		t.Errorf("stats = %+v, want %+v", res.Stats, want)
	}
	if len(res.Map.Markers()) != 0 || res.Written {
		t.Errorf("markers = %d, written = %v", len(res.Map.Markers()), res.Written)
	}
}

func TestBuildFiltersExtensions(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "a.JPG", "b.jpeg", "c.png", "d.TIFF", "e.tif", "notes.txt", "clip.mov", "f.gif")
	if err := os.Mkdir(filepath.Join(src, "album.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	loc := &mockLocator{results: map[string]geotag.Result{"c.png": located(1, 2)}}

	res, err := photomap.NewBuilder(loc, discardLogger()).Build(options(t, src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := photomap.Stats{Processed: 5, WithGPS: 1, WithoutGPS: 4}
	if res.Stats != want {
		t.Errorf("stats = %+v, want %+v", res.Stats, want)
	}
	if got := strings.Join(loc.calls, ","); got != "a.JPG,b.jpeg,c.png,d.TIFF,e.tif" {
		t.Errorf("located files = %s", got)
	}
}

func TestBuildWritesMap(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "zocalo.jpg", "beach.jpg", "blank.png")
	loc := &mockLocator{results: map[string]geotag.Result{
		"zocalo.jpg": located(19.436, -99.133),
		"beach.jpg":  located(21.161908, -86.851528),
	}}
	opts := options(t, src)

	res, err := photomap.NewBuilder(loc, discardLogger()).Build(opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := (photomap.Stats{Processed: 3, WithGPS: 2, WithoutGPS: 1}); res.Stats != want {
		t.Errorf("stats = %+v, want %+v", res.Stats, want)
	}
	if !res.Written {
		t.Fatal("Written = false")
	}

	markers := res.Map.Markers()
	if len(markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(markers))
	}
	// directory order
	if markers[0].Tooltip != "beach.jpg" || markers[1].Tooltip != "zocalo.jpg" {
		t.Errorf("tooltips = %s, %s", markers[0].Tooltip, markers[1].Tooltip)
	}
	if markers[1].Icon.Glyph != "camera" {
		t.Errorf("icon = %+v", markers[1].Icon)
	}
	popup := string(markers[1].Popup)
	for _, want := range []string{"zocalo.jpg", "Lat: 19.436000", "Lon: -99.133000", "<img src="} {
		if !strings.Contains(popup, want) {
			t.Errorf("popup missing %q:\n%s", want, popup)
		}
	}

	data, err := os.ReadFile(opts.OutputPath)
	if err != nil {
		t.Fatalf("read map: %v", err)
	}
	if !strings.Contains(string(data), `"tooltip":"zocalo.jpg"`) {
		t.Error("saved map does not contain the zocalo marker")
	}
}

func TestBuildWritesReport(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "zocalo.jpg")
	loc := &mockLocator{results: map[string]geotag.Result{"zocalo.jpg": located(19.436, -99.133)}}
	opts := options(t, src)
	opts.ReportPath = filepath.Join(t.TempDir(), "photos.xlsx")

	if _, err := photomap.NewBuilder(loc, discardLogger()).Build(opts); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if info, err := os.Stat(opts.ReportPath); err != nil || info.Size() == 0 {
		t.Errorf("report not written: %v", err)
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "a.jpg", "b.jpg", "c.jpg")
	loc := &mockLocator{results: map[string]geotag.Result{
		"a.jpg": located(10, 10),
		"c.jpg": located(-10, -10),
	}}
	b := photomap.NewBuilder(loc, discardLogger())
	opts := options(t, src)

	first, err := b.Build(opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := b.Build(opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if first.Stats != second.Stats || len(first.Map.Markers()) != len(second.Map.Markers()) {
		t.Errorf("runs differ: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestBuildWithExtractor(t *testing.T) {
	src := t.TempDir()
	entries := geotagtest.Coordinates("N", geotagtest.DMS(19, 26, 960), "W", geotagtest.DMS(99, 7, 5880))
	files := map[string][]byte{
		"zocalo.tif":     geotagtest.TIFF(entries...),
		"plaza.jpg":      geotagtest.JPEG(entries...),
		"screenshot.png": geotagtest.PlainPNG(),
		"broken.jpg":     []byte("not a jpeg"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(src, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	b := photomap.NewBuilder(geotag.NewExtractor(discardLogger()), discardLogger())
	res, err := b.Build(options(t, src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := (photomap.Stats{Processed: 4, WithGPS: 2, WithoutGPS: 2}); res.Stats != want {
		t.Errorf("stats = %+v, want %+v", res.Stats, want)
	}
	if len(res.Located) != 2 {
		t.Fatalf("located = %d, want 2", len(res.Located))
	}
	for _, l := range res.Located {
		got := l.Coordinates
		if d := got.Latitude - 19.436; d > 1e-6 || d < -1e-6 {
			t.Errorf("%s: latitude = %v", l.Path, got.Latitude)
		}
		if d := got.Longitude + 99.133; d > 1e-6 || d < -1e-6 {
			t.Errorf("%s: longitude = %v", l.Path, got.Longitude)
		}
	}
}
