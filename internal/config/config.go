// Package config loads emfconv settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"

	"github.com/dyuri/emfconv/internal/metafile"
	"github.com/dyuri/emfconv/internal/model"
)

// Config is the complete settings file
type Config struct {
	Device Device `toml:"device"`
	Read   Read   `toml:"read"`

	// LogLevel is a logrus level name. Empty keeps the current level.
	LogLevel string `toml:"log_level"`
}

// Device describes the reference device new metafiles are recorded for
type Device struct {
	WidthPixels  int32 `toml:"width_px"`
	HeightPixels int32 `toml:"height_px"`
	WidthMM      int32 `toml:"width_mm"`
	HeightMM     int32 `toml:"height_mm"`
	Resolution   int32 `toml:"resolution"`

	// IntegerMiterLimit writes miter limits as integers
	IntegerMiterLimit bool `toml:"integer_miter_limit"`
}

// Read controls metafile decoding
type Read struct {
	// MaxRecordSize bounds a single record. Zero keeps the built-in limit.
	MaxRecordSize uint32 `toml:"max_record_size"`

	// IntegerMiterLimit reads miter limits as integers
	IntegerMiterLimit bool `toml:"integer_miter_limit"`
}

// Default returns the settings used without a file
func Default() Config {
	return Config{
		Device: Device{
			WidthPixels:  metafile.DefaultDeviceWidth,
			HeightPixels: metafile.DefaultDeviceHeight,
			WidthMM:      metafile.DefaultWidthMM,
			HeightMM:     metafile.DefaultHeightMM,
			Resolution:   metafile.DefaultResolution,
		},
	}
}

// Load reads a settings file. Keys missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses settings from r. Zero or missing device values take their
// defaults.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	def := Default().Device
	d := &cfg.Device
	for _, f := range []struct{ v, def *int32 }{
		{&d.WidthPixels, &def.WidthPixels},
		{&d.HeightPixels, &def.HeightPixels},
		{&d.WidthMM, &def.WidthMM},
		{&d.HeightMM, &def.HeightMM},
		{&d.Resolution, &def.Resolution},
	} {
		if *f.v == 0 {
			*f.v = *f.def
		}
	}
	return cfg, nil
}

func (c Config) validate() error {
	d := c.Device
	for name, v := range map[string]int32{
		"width_px":   d.WidthPixels,
		"height_px":  d.HeightPixels,
		"width_mm":   d.WidthMM,
		"height_mm":  d.HeightMM,
		"resolution": d.Resolution,
	} {
		if v < 0 {
			return fmt.Errorf("device.%s must not be negative, got %d: %w", name, v, model.ErrInvalidArgument)
		}
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// ApplyLogLevel sets the logrus level named in the file, if any
func (c Config) ApplyLogLevel() {
	if c.LogLevel == "" {
		return
	}
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
}

// Metafile returns the context settings for a new metafile. A nil frame
// selects auto bounds.
func (c Config) Metafile(frame *model.Rect, description []uint16) metafile.Config {
	return metafile.Config{
		Frame:             frame,
		Device:            model.Size{CX: c.Device.WidthPixels, CY: c.Device.HeightPixels},
		Millimeters:       model.Size{CX: c.Device.WidthMM, CY: c.Device.HeightMM},
		Resolution:        c.Device.Resolution,
		Description:       description,
		IntegerMiterLimit: c.Device.IntegerMiterLimit,
	}
}

// ReadOptions returns the options for metafile.Read
func (c Config) ReadOptions() metafile.Options {
	return metafile.Options{
		MaxRecordSize:     c.Read.MaxRecordSize,
		IntegerMiterLimit: c.Read.IntegerMiterLimit,
	}
}
