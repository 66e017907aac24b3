package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/electronjoe/photomap/internal/geotag"
	"github.com/electronjoe/photomap/internal/logging"
	"github.com/electronjoe/photomap/internal/photo"
)

// photoInfo is the JSON record printed for each photo.
type photoInfo struct {
	geotag.Result
	Error     string `json:"error,omitempty"`
	LatDMS    string `json:"latitude_dms,omitempty"`
	LonDMS    string `json:"longitude_dms,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Supported bool   `json:"supported"`
}

func main() {
	// Parse command-line flags
	dir := pflag.StringP("dir", "d", "", "inspect every photo in this directory instead of the arguments")
	level := pflag.String("log-level", "warn", "debug, info, warn or error")
	pflag.Parse()

	logger := logging.Setup(*level, "text")

	paths := pflag.Args()
	if *dir != "" {
		photos, err := photo.List(*dir)
		if err != nil {
			log.Fatalf("Failed to list photos: %v", err)
		}
		for _, p := range photos {
			paths = append(paths, p.FilePath)
		}
	}
	if len(paths) == 0 {
		log.Fatal("Please pass photo paths as arguments or a directory with --dir")
	}

	extractor := geotag.NewExtractor(logger)
	infos := make([]photoInfo, 0, len(paths))
	for _, path := range paths {
		infos = append(infos, inspect(extractor, logger, path))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}
}

func inspect(extractor *geotag.Extractor, logger *slog.Logger, path string) photoInfo {
	info := photoInfo{
		Result:    extractor.Locate(path),
		Supported: photo.IsImageFile(path),
	}
	if info.Err != nil {
		info.Error = info.Err.Error()
	}
	if c, ok := info.Located(); ok {
		info.LatDMS = geotag.FormatDMS(c.Latitude, geotag.Latitude)
		info.LonDMS = geotag.FormatDMS(c.Longitude, geotag.Longitude)
	}
	if w, h, err := photo.Dimensions(path); err == nil {
		info.Width, info.Height = w, h
	} else {
		logger.Debug("dimensions unavailable", "path", path, "error", err)
	}
	return info
}
