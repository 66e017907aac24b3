package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/electronjoe/photomap/internal/config"
	"github.com/electronjoe/photomap/internal/geotag"
	"github.com/electronjoe/photomap/internal/logging"
	"github.com/electronjoe/photomap/internal/mapview"
	"github.com/electronjoe/photomap/internal/photomap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fmt.Println("Photo map generator")
	fmt.Println(strings.Repeat("=", 50))

	// 1. Environment from .env, if any
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	// 2. Read config
	fs := pflag.NewFlagSet("photomap", pflag.ContinueOnError)
	config.Flags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := config.Load(fs)
	if err != nil {
		log.Printf("Failed to read config: %v", err)
		return 1
	}

	// 3. Logging
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// 4. Build the map
	opts := photomap.Options{
		SourceDir:  cfg.SourceDirectory,
		OutputPath: cfg.OutputPath,
		ReportPath: cfg.ReportPath,
		Center:     geotag.Coordinates{Latitude: cfg.Map.CenterLatitude, Longitude: cfg.Map.CenterLongitude},
		Zoom:       cfg.Map.Zoom,
		Tiles: mapview.TileLayer{
			URL:         cfg.Map.TileURL,
			Attribution: cfg.Map.Attribution,
			MaxZoom:     mapview.OpenStreetMap.MaxZoom,
		},
	}
	builder := photomap.NewBuilder(geotag.NewExtractor(logger), logger)
	res, err := builder.Build(opts)

	// 5. Report
	switch {
	case errors.Is(err, photomap.ErrSourceNotFound):
		fmt.Printf("Error: the folder '%s' does not exist\n", opts.SourceDir)
		fmt.Println("   Create the folder and put your photos in it")
		return 1
	case err != nil:
		fmt.Printf("Error generating the map: %v\n", err)
		return 1
	case !res.Written:
		fmt.Printf("No photos with GPS data found in '%s' (%d processed); no map written\n",
			opts.SourceDir, res.Stats.Processed)
		return 0
	}

	fmt.Println("Map generated successfully!")
	fmt.Printf("   %d of %d photos placed on the map\n", res.Stats.WithGPS, res.Stats.Processed)
	fmt.Printf("   Open '%s' in your browser to see the result\n", opts.OutputPath)
	if opts.ReportPath != "" {
		fmt.Printf("   Spreadsheet written to '%s'\n", opts.ReportPath)
	}
	return 0
}
