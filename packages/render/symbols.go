package render

import (
	"runtime"

	"github.com/fatih/color"
)

// Symbol is the semantic outcome marker at the start of a rendered line.
type Symbol int

const (
	SymbolDefault Symbol = iota
	SymbolSkip
	SymbolPass
	SymbolPassKnown
	SymbolFail
	SymbolDifference
	SymbolWarning
)

// PassSymbol selects the pass variant for the given known-issue state.
func PassSymbol(knownIssues bool) Symbol {
	if knownIssues {
		return SymbolPassKnown
	}
	return SymbolPass
}

// unicodeGlyphs is the mandatory fallback table, safe on any terminal
// with a Unicode font.
var unicodeGlyphs = map[Symbol]string{
	SymbolDefault:    "◇",
	SymbolSkip:       "✘",
	SymbolPass:       "✔",
	SymbolPassKnown:  "✘",
	SymbolFail:       "✘",
	SymbolDifference: "±",
	SymbolWarning:    "⚠", // text presentation, not the emoji variant
}

// iconographicGlyphs is the richer table used when the Glyphs option is
// set and the platform is known to ship fonts that carry them. The
// table is data, not build-tagged code, so it stays testable anywhere.
var iconographicGlyphs = map[Symbol]string{
	SymbolDefault:    "◈",
	SymbolSkip:       "⧈",
	SymbolPass:       "✅",
	SymbolPassKnown:  "❗",
	SymbolFail:       "❌",
	SymbolDifference: "⊖",
	SymbolWarning:    "⚠",
}

// iconographicAvailable gates the richer table per platform. Variable so
// tests can force either branch.
var iconographicAvailable = runtime.GOOS == "darwin" || runtime.GOOS == "linux"

func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// Symbol colors are fixed regardless of the 256-color option: bright
// green for a fresh pass, bright red for failure, bright yellow for
// warnings, dim gray for everything neutral. Each instance forces color
// on so the global fatih/color tty detection cannot silently strip
// escapes; the ANSI decision belongs to Options alone.
var (
	symbolGray   = enabled(color.New(color.FgHiBlack))
	symbolGreen  = enabled(color.New(color.FgHiGreen))
	symbolRed    = enabled(color.New(color.FgHiRed))
	symbolYellow = enabled(color.New(color.FgHiYellow))
)

func (s Symbol) colorizer() *color.Color {
	switch s {
	case SymbolPass:
		return symbolGreen
	case SymbolFail:
		return symbolRed
	case SymbolWarning:
		return symbolYellow
	case SymbolDefault, SymbolSkip, SymbolPassKnown, SymbolDifference:
		return symbolGray
	}
	return symbolGray
}

// glyph returns the bare glyph for the symbol under the given options.
func (s Symbol) glyph(opts Options) string {
	if opts.UseGlyphs && iconographicAvailable {
		if g, ok := iconographicGlyphs[s]; ok {
			return g
		}
	}
	return unicodeGlyphs[s]
}

// Render returns the glyph, color-wrapped (and immediately reset) when
// ANSI output is enabled.
func (s Symbol) Render(opts Options) string {
	g := s.glyph(opts)
	if !opts.UseANSI {
		return g
	}
	return s.colorizer().Sprint(g)
}
