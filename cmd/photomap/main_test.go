package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/electronjoe/photomap/internal/geotag/geotagtest"
)

func TestRunExitStatus(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	empty := t.TempDir()
	geotagged := t.TempDir()
	entries := geotagtest.Coordinates("N", geotagtest.DMS(19, 26, 960), "W", geotagtest.DMS(99, 7, 5880))
	if err := os.WriteFile(filepath.Join(geotagged, "zocalo.tif"), geotagtest.TIFF(entries...), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		src       string
		wantCode  int
		wantWrite bool
	}{
		{"missing directory", filepath.Join(t.TempDir(), "photos"), 1, false},
		{"no geotagged photos", empty, 0, false},
		{"geotagged photo", geotagged, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "viewer.html")
			code := run([]string{"--source", tt.src, "--output", out, "--log-level", "error"})
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			_, err := os.Stat(out)
			if written := err == nil; written != tt.wantWrite {
				t.Errorf("map written = %v, want %v", written, tt.wantWrite)
			}
		})
	}
}

func TestRunBadFlag(t *testing.T) {
	if code := run([]string{"--no-such-flag"}); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
