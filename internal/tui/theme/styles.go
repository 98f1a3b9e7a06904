package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	// Navigation bar
	NavBar    lipgloss.Style
	NavTitle  lipgloss.Style
	NavLink   lipgloss.Style
	NavIcon   lipgloss.Style
	NavAvatar lipgloss.Style

	// Panels and cards
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	PanelRule  lipgloss.Style
	Card       lipgloss.Style
	CardIcon   lipgloss.Style
	CardTitle  lipgloss.Style
	CardValue  lipgloss.Style

	// Text
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Text   lipgloss.Style
	Accent lipgloss.Style
	Error  lipgloss.Style

	// Buttons
	ButtonPrimary   lipgloss.Style
	ButtonSecondary lipgloss.Style
	ButtonFocused   lipgloss.Style

	// Form controls
	Label         lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	InputInvalid  lipgloss.Style
	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	StepActive    lipgloss.Style
	StepInactive  lipgloss.Style
	ProgressEmpty lipgloss.Style

	// Footer and toasts
	Footer        lipgloss.Style
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
	Toast         lipgloss.Style
	ToastError    lipgloss.Style

	// Sales table
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	primary := lipgloss.Color(t.Primary)
	panel := lipgloss.Color(t.BgPanel)
	border := lipgloss.Color(t.Border)
	muted := lipgloss.Color(t.FgMuted)
	bright := lipgloss.Color(t.FgBright)

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return &Styles{
		NavBar:    lipgloss.NewStyle().Background(panel).Padding(0, 2),
		NavTitle:  lipgloss.NewStyle().Foreground(bright).Background(panel).Bold(true),
		NavLink:   lipgloss.NewStyle().Foreground(muted).Background(panel),
		NavIcon:   lipgloss.NewStyle().Foreground(muted).Background(panel),
		NavAvatar: lipgloss.NewStyle().Foreground(primary).Background(panel),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Foreground(bright).Bold(true),
		PanelRule:  lipgloss.NewStyle().Foreground(border),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2),
		CardIcon:  lipgloss.NewStyle().Foreground(primary),
		CardTitle: lipgloss.NewStyle().Foreground(muted),
		CardValue: lipgloss.NewStyle().Foreground(bright).Bold(true),

		Title:  lipgloss.NewStyle().Foreground(bright).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
		Accent: lipgloss.NewStyle().Foreground(primary),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(bright).
			Background(primary).
			Padding(0, 2),
		ButtonSecondary: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface)).
			Padding(0, 2),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Secondary)).
			Bold(true).
			Padding(0, 2),

		Label:        lipgloss.NewStyle().Foreground(muted).Bold(true),
		Input:        input,
		InputFocused: input.BorderForeground(primary),
		InputInvalid: input.BorderForeground(lipgloss.Color(t.Error)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Background(panel).
			Padding(1, 2),
		ModalTitle:    lipgloss.NewStyle().Foreground(bright).Background(panel).Bold(true),
		StepActive:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		StepInactive:  lipgloss.NewStyle().Foreground(muted),
		ProgressEmpty: lipgloss.NewStyle().Foreground(border),

		Footer:        lipgloss.NewStyle().Background(panel).Padding(0, 1),
		HintKey:       lipgloss.NewStyle().Foreground(primary).Background(panel).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(muted).Background(panel),
		HintSeparator: lipgloss.NewStyle().Foreground(border).Background(panel),
		Toast: lipgloss.NewStyle().
			Foreground(bright).
			Background(primary).
			Padding(0, 1).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(bright).
			Background(lipgloss.Color(t.Error)).
			Padding(0, 1).
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).Padding(0, 1),
	}
}
