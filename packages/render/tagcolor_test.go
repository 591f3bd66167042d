package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("red")
	require.NoError(t, err)
	assert.Equal(t, ColorRed, c)

	c, err = ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, Color{255, 136, 0}, c)

	c, err = ParseColor("#f80")
	require.NoError(t, err)
	assert.Equal(t, Color{255, 136, 0}, c)

	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
	_, err = ParseColor("#12345")
	assert.Error(t, err)
}

func TestMergeTagColorsBuiltinsWin(t *testing.T) {
	merged := mergeTagColors(map[string]Color{
		"red":      {1, 2, 3}, // collides with a built-in
		"critical": {255, 136, 0},
	})

	assert.Equal(t, ColorRed, merged["red"])
	assert.Equal(t, Color{255, 136, 0}, merged["critical"])
	assert.Equal(t, ColorBlue, merged["blue"])
}

func TestEscape16(t *testing.T) {
	assert.Equal(t, "\x1b[91m", ColorRed.escape16())
	assert.Equal(t, "\x1b[94m", ColorBlue.escape16())

	// Colors without a 16-color rendition yield no escape at all.
	assert.Equal(t, "", Color{12, 34, 56}.escape16())
}

func TestEscape256CubeIndex(t *testing.T) {
	// 16 + 36r + 6g + b with channels quantized 0-255 -> 0-5.
	assert.Equal(t, "\x1b[38;5;196m", ColorRed.escape256())    // r=5
	assert.Equal(t, "\x1b[38;5;21m", ColorBlue.escape256())    // b=5
	assert.Equal(t, "\x1b[38;5;231m", Color{255, 255, 255}.escape256())
	assert.Equal(t, "\x1b[38;5;16m", Color{0, 0, 0}.escape256())
	assert.Equal(t, "\x1b[38;5;214m", ColorOrange.escape256()) // r=5 g=3 b=0
}

func TestTagDots(t *testing.T) {
	table := mergeTagColors(nil)
	opts := Options{UseANSI: true}

	// Two distinct colors: two dots in deterministic RGB order, one
	// trailing reset.
	dots := tagDots([]string{"red", "blue"}, table, opts)
	assert.Equal(t, "\x1b[94m●\x1b[91m●\x1b[0m", dots)
	assert.Equal(t, 2, strings.Count(dots, "●"))
	assert.Equal(t, 1, strings.Count(dots, "\x1b[0m"))

	// Same input order-independent.
	assert.Equal(t, dots, tagDots([]string{"blue", "red"}, table, opts))

	// Duplicate colors collapse.
	assert.Equal(t, "\x1b[91m●\x1b[0m", tagDots([]string{"red", "red"}, table, opts))

	// Alternate key: mixed-case tags resolve through their lowercase form.
	assert.Equal(t, "\x1b[91m●\x1b[0m", tagDots([]string{"Red"}, table, opts))
}

func TestTagDotsEmptyCases(t *testing.T) {
	table := mergeTagColors(nil)

	assert.Equal(t, "", tagDots([]string{"red"}, table, Options{UseANSI: false}))
	assert.Equal(t, "", tagDots(nil, table, Options{UseANSI: true}))
	assert.Equal(t, "", tagDots([]string{"unbound"}, table, Options{UseANSI: true}))

	// A bound color with no 16-color rendition renders nothing, not a
	// dangling reset.
	custom := mergeTagColors(map[string]Color{"odd": {12, 34, 56}})
	assert.Equal(t, "", tagDots([]string{"odd"}, custom, Options{UseANSI: true}))
}

func TestTagDots256(t *testing.T) {
	custom := mergeTagColors(map[string]Color{"odd": {12, 34, 56}})
	opts := Options{UseANSI: true, Use256Color: true}

	dots := tagDots([]string{"odd"}, custom, opts)
	assert.True(t, strings.HasPrefix(dots, "\x1b[38;5;"))
	assert.True(t, strings.HasSuffix(dots, "\x1b[0m"))
}
