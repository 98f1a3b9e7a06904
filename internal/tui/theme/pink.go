package theme

// NewPink creates the default dark theme with pink accents.
func NewPink() *Theme {
	return &Theme{
		Name:   "pink",
		IsDark: true,

		Primary:   "#FF45A6",
		Secondary: "#FF85C0",
		Tertiary:  "#FFB6D9",
		Accent:    "#FFE6F2",

		BgBase:    "#000000",
		BgPanel:   "#111827", // gray-900
		BgSurface: "#1F2937", // gray-800

		FgMuted:  "#9CA3AF", // gray-400
		FgBase:   "#E5E7EB",
		FgBright: "#FFFFFF",

		Border: "#374151", // gray-700

		Success: "#34D399",
		Warning: "#FBBF24",
		Error:   "#F87171",
	}
}
