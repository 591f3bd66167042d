package render

import (
	"fmt"
	"sort"
	"strings"
)

// ansiReset clears all SGR attributes.
const ansiReset = "\x1b[0m"

// Color is an RGB display color bound to a tag.
type Color struct {
	R, G, B uint8
}

// The six built-in tag colors. User overrides never replace these
// bindings; on a name collision the built-in wins.
var (
	ColorRed    = Color{255, 0, 0}
	ColorOrange = Color{255, 128, 0}
	ColorYellow = Color{255, 255, 0}
	ColorGreen  = Color{0, 255, 0}
	ColorBlue   = Color{0, 0, 255}
	ColorPurple = Color{128, 0, 128}
)

var builtinTagColors = map[string]Color{
	"red":    ColorRed,
	"orange": ColorOrange,
	"yellow": ColorYellow,
	"green":  ColorGreen,
	"blue":   ColorBlue,
	"purple": ColorPurple,
}

// ParseColor reads a color name or a "#rgb"/"#rrggbb" hex literal.
func ParseColor(s string) (Color, error) {
	if c, ok := builtinTagColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		return Color{r * 17, g * 17, b * 17}, nil
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		return Color{r, g, b}, nil
	}
	return Color{}, fmt.Errorf("invalid color %q (want a name or #rrggbb)", s)
}

// mergeTagColors overlays the built-in bindings onto user overrides.
func mergeTagColors(overrides map[string]Color) map[string]Color {
	merged := make(map[string]Color, len(builtinTagColors)+len(overrides))
	for tag, c := range overrides {
		merged[tag] = c
	}
	for tag, c := range builtinTagColors {
		merged[tag] = c
	}
	return merged
}

// escape16 maps the six built-in colors to fixed foreground codes. Any
// other color has no 16-color rendition and yields no escape at all.
func (c Color) escape16() string {
	switch c {
	case ColorRed:
		return "\x1b[91m"
	case ColorOrange:
		return "\x1b[33m"
	case ColorYellow:
		return "\x1b[93m"
	case ColorGreen:
		return "\x1b[92m"
	case ColorBlue:
		return "\x1b[94m"
	case ColorPurple:
		return "\x1b[95m"
	}
	return ""
}

// escape256 selects the nearest entry of the xterm 6x6x6 color cube.
func (c Color) escape256() string {
	idx := 16 + 36*quantize(c.R) + 6*quantize(c.G) + quantize(c.B)
	return fmt.Sprintf("\x1b[38;5;%dm", idx)
}

// quantize maps a 0-255 channel onto the cube's 0-5 range, rounding to
// the nearest step.
func quantize(v uint8) int {
	return (int(v)*5 + 127) / 255
}

func (c Color) escape(use256 bool) string {
	if use256 {
		return c.escape256()
	}
	return c.escape16()
}

// tagDots renders one colored filled-circle glyph per distinct color the
// test's tags resolve to, in deterministic RGB order, sharing a single
// trailing reset. Empty when ANSI is off or nothing resolves.
func tagDots(tags []string, table map[string]Color, opts Options) string {
	if !opts.UseANSI || len(tags) == 0 {
		return ""
	}

	seen := make(map[Color]struct{})
	var colors []Color
	for _, tag := range tags {
		c, ok := table[tag]
		if !ok {
			// Alternate key: raw tag values arrive with varying case.
			c, ok = table[strings.ToLower(tag)]
		}
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return ""
	}

	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	var sb strings.Builder
	for _, c := range colors {
		esc := c.escape(opts.Use256Color)
		if esc == "" {
			continue
		}
		sb.WriteString(esc)
		sb.WriteString("●")
	}
	if sb.Len() == 0 {
		return ""
	}
	sb.WriteString(ansiReset)
	return sb.String()
}
