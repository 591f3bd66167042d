package render

// Options is the presentation configuration of a Recorder. The zero
// value renders plain Unicode text with no escape sequences.
type Options struct {
	// UseANSI enables SGR escape sequences in the output.
	UseANSI bool

	// Use256Color renders tag colors through the xterm 256-color cube
	// instead of the fixed 16-color codes. Only meaningful with UseANSI.
	Use256Color bool

	// UseGlyphs selects the iconographic glyph table where the platform
	// supports it.
	UseGlyphs bool

	// TagColors maps tag names to display colors. Merged with the six
	// built-in bindings; built-ins win on conflict.
	TagColors map[string]Color
}

// Option configures a Recorder.
type Option func(*Options)

// WithANSI toggles escape sequences in the output.
func WithANSI(on bool) Option {
	return func(o *Options) {
		o.UseANSI = on
	}
}

// With256Color toggles 256-color tag rendering.
func With256Color(on bool) Option {
	return func(o *Options) {
		o.Use256Color = on
	}
}

// WithGlyphs toggles the iconographic glyph table.
func WithGlyphs(on bool) Option {
	return func(o *Options) {
		o.UseGlyphs = on
	}
}

// WithTagColor binds one tag to a color. When the same tag is bound by
// several options the last one wins; built-in bindings beat both.
func WithTagColor(tag string, c Color) Option {
	return func(o *Options) {
		if o.TagColors == nil {
			o.TagColors = make(map[string]Color)
		}
		o.TagColors[tag] = c
	}
}

// WithTagColors binds a whole override map, entry by entry, with the
// same precedence as WithTagColor.
func WithTagColors(colors map[string]Color) Option {
	return func(o *Options) {
		if o.TagColors == nil {
			o.TagColors = make(map[string]Color, len(colors))
		}
		for tag, c := range colors {
			o.TagColors[tag] = c
		}
	}
}
