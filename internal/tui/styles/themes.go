package styles

// NewDarkTheme is the default scheme, tuned for dark terminals
func NewDarkTheme() *Theme {
	return &Theme{
		Name:   "dark",
		IsDark: true,

		Primary: ParseHex("#8E44AD"), // Deep purple
		Accent:  ParseHex("#F39C12"), // Golden orange

		BgBase:   ParseHex("#1E1E2E"),
		BgSubtle: ParseHex("#313244"),

		FgBase:     ParseHex("#CDD6F4"),
		FgMuted:    ParseHex("#A6ADC8"),
		FgSubtle:   ParseHex("#6C7086"),
		FgInverted: ParseHex("#1E1E2E"),

		Border:      ParseHex("#45475A"),
		BorderFocus: ParseHex("#F39C12"),

		Success: ParseHex("#A6E3A1"),
		Error:   ParseHex("#F38BA8"),
		Warning: ParseHex("#F9E2AF"),
		Info:    ParseHex("#89B4FA"),

		Exact:  ParseHex("#A6E3A1"), // Green, an exact answer
		Approx: ParseHex("#89B4FA"), // Blue, a rounded one
	}
}

// NewLightTheme is the same palette flipped for light terminals
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary: ParseHex("#8839EF"),
		Accent:  ParseHex("#DD7800"),

		BgBase:   ParseHex("#EFF1F5"),
		BgSubtle: ParseHex("#CCD0DA"),

		FgBase:     ParseHex("#4C4F69"),
		FgMuted:    ParseHex("#6C6F85"),
		FgSubtle:   ParseHex("#9CA0B0"),
		FgInverted: ParseHex("#EFF1F5"),

		Border:      ParseHex("#BCC0CC"),
		BorderFocus: ParseHex("#DD7800"),

		Success: ParseHex("#40A02B"),
		Error:   ParseHex("#D20F39"),
		Warning: ParseHex("#DF8E1D"),
		Info:    ParseHex("#1E66F5"),

		Exact:  ParseHex("#40A02B"),
		Approx: ParseHex("#1E66F5"),
	}
}
