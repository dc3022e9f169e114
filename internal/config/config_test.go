package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyuri/emfconv/internal/model"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
log_level = "debug"

[device]
width_px = 1920
height_px = 1080
integer_miter_limit = true

[read]
max_record_size = 4096
`))
	require.NoError(t, err)

	assert.Equal(t, int32(1920), cfg.Device.WidthPixels)
	assert.Equal(t, int32(1080), cfg.Device.HeightPixels)
	assert.Equal(t, int32(320), cfg.Device.WidthMM, "missing keys keep defaults")
	assert.Equal(t, int32(96), cfg.Device.Resolution)
	assert.True(t, cfg.Device.IntegerMiterLimit)
	assert.Equal(t, uint32(4096), cfg.Read.MaxRecordSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsBadValues(t *testing.T) {
	_, err := Decode(strings.NewReader("[device]\nwidth_mm = -3\n"))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = Decode(strings.NewReader(`log_level = "loud"`))
	assert.ErrorContains(t, err, "log_level")

	_, err = Decode(strings.NewReader("[device\n"))
	assert.ErrorContains(t, err, "decode config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emfconv.toml")
	require.NoError(t, os.WriteFile(path, []byte("[read]\ninteger_miter_limit = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ReadOptions().IntegerMiterLimit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMetafileSettings(t *testing.T) {
	cfg := Default()
	cfg.Device.Resolution = 300
	frame := model.Rect{Right: 100, Bottom: 100}

	mc := cfg.Metafile(&frame, model.NewDescription("a", "b"))
	assert.Equal(t, &frame, mc.Frame)
	assert.Equal(t, model.Size{CX: 1280, CY: 1024}, mc.Device)
	assert.Equal(t, model.Size{CX: 320, CY: 240}, mc.Millimeters)
	assert.Equal(t, int32(300), mc.Resolution)
	assert.NotEmpty(t, mc.Description)
}

func TestApplyLogLevel(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(prev) })

	Config{LogLevel: "warn"}.ApplyLogLevel()
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	Config{}.ApplyLogLevel()
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
