package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultConfigDir = ".photomap"
	EnvPrefix        = "PHOTOMAP"
)

// Config holds all photomap configuration.
type Config struct {
	SourceDirectory string    `mapstructure:"source_directory"`
	OutputPath      string    `mapstructure:"output_path"`
	ReportPath      string    `mapstructure:"report_path"`
	Map             MapConfig `mapstructure:"map"`
	Log             LogConfig `mapstructure:"log"`
}

type MapConfig struct {
	CenterLatitude  float64 `mapstructure:"center_latitude"`
	CenterLongitude float64 `mapstructure:"center_longitude"`
	Zoom            int     `mapstructure:"zoom"`
	TileURL         string  `mapstructure:"tile_url"`
	Attribution     string  `mapstructure:"attribution"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Flags registers the command-line overrides understood by Load.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default: config.* in . or ~/"+DefaultConfigDir+")")
	fs.StringP("source", "s", "", "directory containing the photos")
	fs.StringP("output", "o", "", "path of the generated HTML map")
	fs.String("report", "", "optional path of an .xlsx report of geotagged photos")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("log-format", "", "text or json")
}

var flagKeys = map[string]string{
	"source":     "source_directory",
	"output":     "output_path",
	"report":     "report_path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Load reads configuration from defaults, an optional config file, PHOTOMAP_*
// environment variables and, when fs is not nil, command-line flags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("source_directory", "photos")
	v.SetDefault("output_path", "viewer.html")
	v.SetDefault("report_path", "")
	v.SetDefault("map.center_latitude", 23.6345)
	v.SetDefault("map.center_longitude", -102.5528)
	v.SetDefault("map.zoom", 6)
	v.SetDefault("map.tile_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.attribution", `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	// PHOTOMAP_MAP_ZOOM -> map.zoom
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.SourceDirectory) == "" {
		errs = append(errs, "source_directory is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		errs = append(errs, "output_path is required")
	}
	if c.Map.CenterLatitude < -90 || c.Map.CenterLatitude > 90 {
		errs = append(errs, fmt.Sprintf("map.center_latitude must be within [-90, 90], got %v", c.Map.CenterLatitude))
	}
	if c.Map.CenterLongitude < -180 || c.Map.CenterLongitude > 180 {
		errs = append(errs, fmt.Sprintf("map.center_longitude must be within [-180, 180], got %v", c.Map.CenterLongitude))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 19 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 0-19, got %d", c.Map.Zoom))
	}
	if c.Map.TileURL == "" {
		errs = append(errs, "map.tile_url is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
