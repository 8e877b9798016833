package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the board and the application views.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// palette is the handful of colors a theme is derived from.
type palette struct {
	primary    lipgloss.Color
	onPrimary  lipgloss.Color
	foreground lipgloss.Color
	subtle     lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Color
	info       lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	danger     lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return Theme{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(p.foreground).MarginBottom(1),
		Subtitle:      lipgloss.NewStyle().Foreground(p.subtle).MarginBottom(1),
		Normal:        lipgloss.NewStyle().Foreground(p.foreground),
		Bold:          lipgloss.NewStyle().Bold(true).Foreground(p.foreground),
		Selected:      lipgloss.NewStyle().Background(p.primary).Foreground(p.onPrimary).Bold(true),
		Box:           lipgloss.NewStyle().Padding(1, 2),
		BorderedBox:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.border).Padding(1, 2),
		StatusInfo:    status(p.info),
		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.danger),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Primary:       p.primary,
		Muted:         p.muted,
		Border:        p.border,
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#7c3aed"),
	onPrimary:  lipgloss.Color("#fafafa"),
	foreground: lipgloss.Color("#fafafa"),
	subtle:     lipgloss.Color("#a3a3a3"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	info:       lipgloss.Color("#3b82f6"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	danger:     lipgloss.Color("#ef4444"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	onPrimary:  lipgloss.Color("#1e1e2e"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtle:     lipgloss.Color("#a6adc8"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	info:       lipgloss.Color("#89dceb"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	danger:     lipgloss.Color("#f38ba8"),
})

// GetTheme returns a theme by name. Unknown names get Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
