package styles

// NewOneHalfDarkTheme is the default theme.
func NewOneHalfDarkTheme() *Theme {
	return &Theme{
		Name:   "onehalf-dark",
		IsDark: true,

		Primary:   RGB(97, 175, 239),  // blue
		Secondary: RGB(198, 120, 221), // magenta
		Accent:    RGB(86, 182, 194),  // cyan

		BgBase:      RGB(40, 44, 52),
		BgSubtle:    RGB(49, 54, 64),
		BgHighlight: RGB(61, 70, 87),

		FgBase:     RGB(220, 223, 228),
		FgMuted:    RGB(145, 148, 158),
		FgSubtle:   RGB(92, 99, 112),
		FgInverted: RGB(40, 44, 52),

		Border:      RGB(92, 99, 112),
		BorderFocus: RGB(97, 175, 239),

		Success: RGB(152, 195, 121),
		Error:   RGB(224, 108, 117),
		Warning: RGB(229, 192, 123),
		Info:    RGB(86, 182, 194),

		Tag:       RGB(224, 108, 117),
		Attribute: RGB(209, 154, 102),
		String:    RGB(152, 195, 121),
		Number:    RGB(209, 154, 102),
	}
}

// NewOneHalfLightTheme is the light variant for bright terminals.
func NewOneHalfLightTheme() *Theme {
	return &Theme{
		Name:   "onehalf-light",
		IsDark: false,

		Primary:   RGB(1, 132, 188),
		Secondary: RGB(166, 38, 164),
		Accent:    RGB(9, 151, 179),

		BgBase:      RGB(250, 250, 250),
		BgSubtle:    RGB(240, 240, 240),
		BgHighlight: RGB(220, 226, 236),

		FgBase:     RGB(56, 58, 66),
		FgMuted:    RGB(105, 108, 119),
		FgSubtle:   RGB(160, 161, 167),
		FgInverted: RGB(250, 250, 250),

		Border:      RGB(160, 161, 167),
		BorderFocus: RGB(1, 132, 188),

		Success: RGB(80, 161, 79),
		Error:   RGB(228, 86, 73),
		Warning: RGB(193, 132, 1),
		Info:    RGB(9, 151, 179),

		Tag:       RGB(228, 86, 73),
		Attribute: RGB(152, 104, 1),
		String:    RGB(80, 161, 79),
		Number:    RGB(152, 104, 1),
	}
}
