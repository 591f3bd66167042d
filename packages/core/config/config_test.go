package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testglow/testglow/packages/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testglow.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.GetUse256Color())
	assert.False(t, cfg.GetGlyphs())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
color: always
color256: true
glyphs: true
tagColors:
  critical: "#ff8800"
  hot: red
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.True(t, cfg.GetUse256Color())
	assert.True(t, cfg.GetGlyphs())
	assert.Equal(t, "#ff8800", cfg.TagColors["critical"])
}

func TestLoadConfigInvalidColorMode(t *testing.T) {
	path := writeConfig(t, "color: sometimes\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid color mode")
}

func TestFindAndLoadConfigSearchOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".testglow.yml"), []byte("color: never\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testglow.yml"), []byte("color: always\n"), 0o644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.Color)
}

func TestUseANSIResolution(t *testing.T) {
	assert.True(t, (&Config{Color: ColorAlways}).UseANSI(false))
	assert.False(t, (&Config{Color: ColorNever}).UseANSI(true))
	assert.True(t, (&Config{Color: ColorAuto}).UseANSI(true))
	assert.False(t, (&Config{Color: ColorAuto}).UseANSI(false))
	assert.True(t, (&Config{}).UseANSI(true))
}

func TestRenderOptions(t *testing.T) {
	cfg := &Config{
		Color:     ColorAlways,
		TagColors: map[string]string{"critical": "#ff8800", "hot": "red"},
	}

	opts, err := cfg.RenderOptions(false)
	require.NoError(t, err)

	var resolved render.Options
	for _, opt := range opts {
		opt(&resolved)
	}
	assert.True(t, resolved.UseANSI)
	assert.False(t, resolved.Use256Color)
	assert.Equal(t, render.Color{R: 255, G: 136, B: 0}, resolved.TagColors["critical"])
	assert.Equal(t, render.ColorRed, resolved.TagColors["hot"])
}

func TestRenderOptionsBadTagColor(t *testing.T) {
	cfg := &Config{TagColors: map[string]string{"x": "nope"}}
	_, err := cfg.RenderOptions(false)
	assert.ErrorContains(t, err, `tag "x"`)
}
