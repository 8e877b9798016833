package components

import (
	"strings"

	"github.com/Veraticus/backoffice/internal/tui/themes"
	"github.com/Veraticus/backoffice/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GrievanceListModel renders one page of the grievance board.
type GrievanceListModel struct {
	theme     themes.Theme
	view      viewmodel.GrievanceListView
	paginator paginator.Model
	table     table.Model
	width     int
	height    int
}

type listKeyMap struct {
	Open     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
}

var listKeys = listKeyMap{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←/h", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "next page"),
	),
}

// fixed column widths; Name, Email and Subject share what is left.
var fixedWidths = map[string]int{
	"#":      4,
	"Type":   9,
	"Phone":  14,
	"Raised": 20,
	"Status": 9,
}

// NewGrievanceList creates an empty grievance list.
func NewGrievanceList(theme themes.Theme) GrievanceListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = lipgloss.NewStyle().Foreground(theme.Primary).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(theme.Muted).Render("•")

	m := GrievanceListModel{
		theme:     theme,
		table:     t,
		paginator: p,
		width:     100,
		height:    20,
	}
	m.updateColumns()
	return m
}

// SetView replaces the page being shown. The cursor stays on the same row
// index when the page still has that many rows.
func (m GrievanceListModel) SetView(v viewmodel.GrievanceListView) GrievanceListModel {
	m.view = v

	rows := make([]table.Row, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, r.Cells())
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.paginator.TotalPages = max(v.PageCount, 1)
	m.paginator.Page = v.Page
	return m
}

// View renders the list.
func (m GrievanceListModel) View() string {
	return m.render()
}

// Page returns the page currently shown.
func (m GrievanceListModel) Page() viewmodel.GrievanceListView {
	return m.view
}

// Selected returns the row under the cursor.
func (m GrievanceListModel) Selected() (viewmodel.GrievanceRowView, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.view.Rows) {
		return viewmodel.GrievanceRowView{}, false
	}
	return m.view.Rows[c], true
}

// Update handles messages.
func (m GrievanceListModel) Update(msg tea.Msg) (GrievanceListModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, listKeys.Open):
			row, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return GrievanceSelectedMsg{Ref: row.Ref}
			}

		case key.Matches(msg, listKeys.PrevPage):
			return m, pageRequest(-1)

		case key.Matches(msg, listKeys.NextPage):
			return m, pageRequest(1)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func pageRequest(delta int) tea.Cmd {
	return func() tea.Msg {
		return PageRequestMsg{Delta: delta}
	}
}

// Resize updates the component dimensions.
func (m *GrievanceListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	// header, summary, footer and spacing
	m.table.SetHeight(max(height-6, 3))
	m.updateColumns()
}

func (m *GrievanceListModel) updateColumns() {
	fixed := 0
	for _, w := range fixedWidths {
		fixed += w
	}
	// each column is padded by one cell on either side
	flexible := max(m.width-fixed-2*len(viewmodel.Columns), 30) / 3

	columns := make([]table.Column, 0, len(viewmodel.Columns))
	for _, title := range viewmodel.Columns {
		w, ok := fixedWidths[title]
		if !ok {
			w = flexible
		}
		columns = append(columns, table.Column{Title: title, Width: w})
	}
	m.table.SetColumns(columns)
}

func (m GrievanceListModel) render() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Title.Render("Grievances"),
		"  ",
		m.theme.Subtitle.Render(m.view.Summary()),
	)

	if m.view.IsEmpty() {
		empty := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No grievances to show")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	footer := strings.Join([]string{
		m.paginator.View(),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.view.PageLabel()),
	}, "  ")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.table.View(),
		"",
		footer,
	)
}
