package components

import (
	"strings"

	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 24

// RenderDetailRows renders labelled rows, one per line.
func RenderDetailRows(rows []detail.Row, theme themes.Theme) string {
	labelStyle := theme.Bold.
		Width(labelWidth).
		Align(lipgloss.Right)
	valueStyle := theme.Normal

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(r.Label+": "),
			valueStyle.Render(r.Display()),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderDetailView renders a full detail screen: the active navigation item,
// the field rows and any download actions.
func RenderDetailView(v detail.View, theme themes.Theme, width int) string {
	sectionStyle := theme.Box.
		Width(max(width-4, labelWidth+10)).
		MarginLeft(2)

	var sections []string
	if v.ActiveItem != "" {
		sections = append(sections, theme.Title.Render(v.ActiveItem))
	}
	sections = append(sections, sectionStyle.Render(RenderDetailRows(v.Rows(), theme)))

	if files := v.Files(); len(files) > 0 {
		lines := []string{theme.Subtitle.Render("Downloads")}
		for _, f := range files {
			if f.Available() {
				lines = append(lines, "  "+theme.StatusInfo.Render(f.Label)+"  "+f.Path)
			} else {
				lines = append(lines, "  "+theme.StatusWarning.Render(f.Label+" (not provided)"))
			}
		}
		sections = append(sections, sectionStyle.Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
