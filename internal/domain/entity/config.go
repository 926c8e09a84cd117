package entity

// Config is the immutable-per-arrange configuration record consumed from
// the (external) configuration loader. Every field here is read by the
// layout core during a single arrange pass; none of it is mutated by the
// core itself.
type Config struct {
	// Gap is the configured pixel gap between and around tiled views.
	Gap int `mapstructure:"gap" yaml:"gap" jsonschema:"default=0,minimum=0"`
	// SmartGaps elides a tiled node's gap inset along edges flush with the
	// workspace when the workspace has a single child; the workspace's own
	// outer gap is unaffected.
	SmartGaps bool `mapstructure:"smart_gaps" yaml:"smart_gaps"`
	// EdgeGaps, when false, elides gap insets along edges flush with the workspace.
	EdgeGaps bool `mapstructure:"edge_gaps" yaml:"edge_gaps" jsonschema:"default=true"`
	// HideEdgeBorders controls suppression of borders flush with the workspace edge.
	HideEdgeBorders HideEdgeBorders `mapstructure:"hide_edge_borders" yaml:"hide_edge_borders"`
	// FontHeight is the pixel line height used to size B_NORMAL title bars
	// (title bar height = FontHeight + 4).
	FontHeight int `mapstructure:"font_height" yaml:"font_height" jsonschema:"default=14,minimum=1"`
	// DefaultLayout is the layout newly synthesized workspaces/containers inherit.
	DefaultLayout Layout `mapstructure:"default_layout" yaml:"default_layout"`
	// DefaultOrientation biases a new container's layout (Horiz or Vert)
	// when a split is requested without an explicit orientation.
	DefaultOrientation Layout `mapstructure:"default_orientation" yaml:"default_orientation"`
	// ForceFocusWrapping makes get_in_direction return the wrap candidate
	// immediately instead of returning None at a workspace boundary.
	ForceFocusWrapping bool `mapstructure:"force_focus_wrapping" yaml:"force_focus_wrapping"`
}

// DefaultConfig returns the configuration baseline new workspaces and the
// demo CLI start from.
func DefaultConfig() Config {
	return Config{
		Gap:                0,
		SmartGaps:          false,
		EdgeGaps:           true,
		HideEdgeBorders:    HideNone,
		FontHeight:         14,
		DefaultLayout:      LayoutHoriz,
		DefaultOrientation: LayoutHoriz,
		ForceFocusWrapping: false,
	}
}

// EffectiveGap rounds gap down to the nearest even number, matching
// ("effective gap = swayc_gap(c) rounded down to even").
func (c Config) EffectiveGap() int {
	g := c.Gap
	if g < 0 {
		g = 0
	}
	return g - (g % 2)
}
