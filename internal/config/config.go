// Package config loads demo settings: flag defaults, then an optional YAML
// file, then flags set explicitly on the command line.
package config

import (
	"errors"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"roguecore/internal/event"
)

// Config is the full demo configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Events EventsConfig `koanf:"events"`
	Vision VisionConfig `koanf:"vision"`
	Map    MapConfig    `koanf:"map"`
}

type LogConfig struct {
	Level    string `koanf:"level"`
	Encoding string `koanf:"encoding"`
}

type EventsConfig struct {
	MaxDepth int `koanf:"max_depth"`
}

type VisionConfig struct {
	Radius int `koanf:"radius"`
}

// MapConfig drives realm generation.
type MapConfig struct {
	Width     int     `koanf:"width"`
	Height    int     `koanf:"height"`
	Seed      int64   `koanf:"seed"`
	MinLeaf   int     `koanf:"min_leaf"`
	MinRoom   int     `koanf:"min_room"`
	DarkRooms float64 `koanf:"dark_rooms"`
	Sentries  int     `koanf:"sentries"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Events: EventsConfig{MaxDepth: event.DefaultMaxDepth},
		Vision: VisionConfig{Radius: 8},
		Map: MapConfig{
			Width:     80,
			Height:    40,
			Seed:      1,
			MinLeaf:   8,
			MinRoom:   4,
			DarkRooms: 0.3,
			Sentries:  3,
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":        "log.level",
	"log-encoding":     "log.encoding",
	"events-max-depth": "events.max_depth",
	"vision-radius":    "vision.radius",
	"map-width":        "map.width",
	"map-height":       "map.height",
	"map-seed":         "map.seed",
	"map-min-leaf":     "map.min_leaf",
	"map-min-room":     "map.min_room",
	"map-dark-rooms":   "map.dark_rooms",
	"map-sentries":     "map.sentries",
}

// RegisterFlags adds one flag per key to fs, defaulting to Default().
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-encoding", d.Log.Encoding, "log encoding (json or console)")
	fs.Int("events-max-depth", d.Events.MaxDepth, "maximum nested event publication depth")
	fs.Int("vision-radius", d.Vision.Radius, "player sight radius in tiles")
	fs.Int("map-width", d.Map.Width, "map width in tiles")
	fs.Int("map-height", d.Map.Height, "map height in tiles")
	fs.Int64("map-seed", d.Map.Seed, "map generation seed")
	fs.Int("map-min-leaf", d.Map.MinLeaf, "minimum BSP leaf size")
	fs.Int("map-min-room", d.Map.MinRoom, "minimum room size")
	fs.Float64("map-dark-rooms", d.Map.DarkRooms, "chance (0..1) that a room is unlit")
	fs.Int("map-sentries", d.Map.Sentries, "number of sentries to place")
}

// Load merges the flag defaults in fs, the YAML file at path (skipped when
// empty) and the flags explicitly set in fs, in that order of precedence.
func Load(fs *pflag.FlagSet, path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
		}
	}

	// Unchanged flags only fill keys the file left unset.
	flags := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(fs, f)
	})
	if err := k.Load(flags, nil); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects sizes, radii and depths that cannot produce a playable
// realm.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, key string, val any) {
		if !ok {
			errs = append(errs, oops.Code("CONFIG_INVALID").With("key", key, "value", val).Errorf("invalid %s: %v", key, val))
		}
	}
	check(c.Events.MaxDepth > 0, "events.max_depth", c.Events.MaxDepth)
	check(c.Vision.Radius > 0, "vision.radius", c.Vision.Radius)
	check(c.Map.MinRoom >= 3, "map.min_room", c.Map.MinRoom)
	check(c.Map.MinLeaf >= c.Map.MinRoom+2, "map.min_leaf", c.Map.MinLeaf)
	check(c.Map.Width >= c.Map.MinLeaf+2, "map.width", c.Map.Width)
	check(c.Map.Height >= c.Map.MinLeaf+2, "map.height", c.Map.Height)
	check(c.Map.DarkRooms >= 0 && c.Map.DarkRooms <= 1, "map.dark_rooms", c.Map.DarkRooms)
	check(c.Map.Sentries >= 0, "map.sentries", c.Map.Sentries)
	return errors.Join(errs...)
}
