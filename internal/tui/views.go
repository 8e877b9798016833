package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLoading:
		return m.renderLoading()
	case StateList:
		content = m.list.View()
	case StateDetail:
		content = m.detail.View()
	case StateHelp:
		return m.renderHelp()
	}

	return m.wrapWithBorder(content)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Grievance Board"),
		"",
		m.spinner.View()+" Fetching pending grievances...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	m.help.ShowAll = true
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(min(m.width-4, 72)).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					m.theme.Title.Render("Grievance Board - Help"),
					m.help.View(m.keymap),
					"",
					footer,
				),
			),
	)
}

// wrapWithBorder adds a border around content.
func (m Model) wrapWithBorder(content string) string {
	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderStatusBar(),
	)

	return m.theme.BorderedBox.
		Width(m.width).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left string
	switch m.state {
	case StateList:
		left = m.theme.StatusInfo.Render("Browse")
	case StateDetail:
		left = m.theme.StatusInfo.Render("Resolve")
	}
	if len(m.loading) > 0 {
		left += " " + m.spinner.View() + m.theme.StatusWarning.Render(m.loadingLabel())
	}

	center := ""
	if m.status.text != "" {
		style := m.theme.StatusSuccess
		if m.status.isErr {
			style = m.theme.StatusError
		}
		center = style.Render(m.status.text)
	}

	right := m.help.ShortHelpView(m.keymap.ShortHelp())

	// Account for borders and padding
	spacing := max(m.width-6-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftPad := spacing / 2

	return strings.Join([]string{
		left,
		strings.Repeat(" ", leftPad),
		center,
		strings.Repeat(" ", spacing-leftPad),
		right,
	}, "")
}
