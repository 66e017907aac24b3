package photo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// Photo is an image file found in the source directory.
type Photo struct {
	FilePath string
	Name     string
}

// List returns the image files directly inside dir, sorted by name.
// Subdirectories and files with other extensions are skipped.
func List(dir string) ([]Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var photos []Photo
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		photos = append(photos, Photo{
			FilePath: filepath.Join(dir, entry.Name()),
			Name:     entry.Name(),
		})
	}
	return photos, nil
}

// IsImageFile checks for the supported photo extensions, ignoring case.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".tiff", ".tif":
		return true
	}
	return false
}

// Dimensions uses image.DecodeConfig to get width and height without decoding the full image.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open file for dimensions: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config failed for %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
