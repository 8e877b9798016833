package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MessagePlaceholder is shown in the empty resolution box.
const MessagePlaceholder = "Add your message here"

// GrievanceDetailModel shows one grievance and collects the resolution
// message.
type GrievanceDetailModel struct {
	theme      themes.Theme
	dates      detail.DateFormatter
	err        string
	message    textarea.Model
	grievance  model.Grievance
	width      int
	height     int
	submitting bool
}

type detailKeyMap struct {
	Focus   key.Binding
	Blur    key.Binding
	Submit  key.Binding
	Resolve key.Binding
	Back    key.Binding
}

var detailKeys = detailKeyMap{
	Focus: key.NewBinding(
		key.WithKeys("m", "tab", "i"),
		key.WithHelp("m", "write message"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc", "tab"),
		key.WithHelp("esc", "stop editing"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "resolve"),
	),
	Resolve: key.NewBinding(
		key.WithKeys("r", "ctrl+s"),
		key.WithHelp("r", "resolve"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back to list"),
	),
}

// NewGrievanceDetail creates the detail view for g.
func NewGrievanceDetail(g model.Grievance, dates detail.DateFormatter, theme themes.Theme) GrievanceDetailModel {
	ta := textarea.New()
	ta.Placeholder = MessagePlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(4)
	ta.SetWidth(60)

	return GrievanceDetailModel{
		theme:     theme,
		dates:     dates,
		grievance: g,
		message:   ta,
	}
}

// Grievance returns the grievance being shown.
func (m GrievanceDetailModel) Grievance() model.Grievance {
	return m.grievance
}

// Message returns the resolution message typed so far.
func (m GrievanceDetailModel) Message() string {
	return m.message.Value()
}

// Editing reports whether the message box has focus.
func (m GrievanceDetailModel) Editing() bool {
	return m.message.Focused()
}

// Submitting reports whether a resolve call is in flight.
func (m GrievanceDetailModel) Submitting() bool {
	return m.submitting
}

// Failed records a failed resolve attempt so the operator can retry. The
// typed message is kept.
func (m GrievanceDetailModel) Failed(reason string) GrievanceDetailModel {
	m.submitting = false
	m.err = reason
	return m
}

// Update handles messages.
func (m GrievanceDetailModel) Update(msg tea.Msg) (GrievanceDetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.message.Focused() {
			var cmd tea.Cmd
			m.message, cmd = m.message.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.submitting {
		return m, nil
	}

	if m.message.Focused() {
		switch {
		case key.Matches(keyMsg, detailKeys.Submit):
			return m.submit()
		case key.Matches(keyMsg, detailKeys.Blur):
			m.message.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, detailKeys.Focus):
		return m, m.message.Focus()
	case key.Matches(keyMsg, detailKeys.Resolve):
		return m.submit()
	case key.Matches(keyMsg, detailKeys.Back):
		return m, func() tea.Msg {
			return BackToListMsg{}
		}
	}
	return m, nil
}

func (m GrievanceDetailModel) submit() (GrievanceDetailModel, tea.Cmd) {
	if !m.grievance.IsPending() {
		m.err = "Grievance is already resolved"
		return m, nil
	}

	m.submitting = true
	m.err = ""
	m.message.Blur()
	req := ResolveRequestedMsg{Ref: m.grievance.Ref(), Message: m.message.Value()}
	return m, func() tea.Msg {
		return req
	}
}

// Resize updates the component dimensions.
func (m *GrievanceDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.message.SetWidth(max(width-8, 20))
}

// View renders the detail view.
func (m GrievanceDetailModel) View() string {
	titleStyle := m.theme.Title
	sectionStyle := m.theme.Box.MarginLeft(2)

	title := titleStyle.Render(fmt.Sprintf("%s Grievance #%d", m.grievance.UserType, m.grievance.ID))
	rows := detail.GrievanceView(m.grievance, m.dates).Rows()

	sections := []string{
		title,
		sectionStyle.Render(RenderDetailRows(rows, m.theme)),
		m.theme.Subtitle.Render("Resolution"),
		m.message.View(),
	}

	var status string
	switch {
	case m.submitting:
		status = m.theme.StatusPending.Render("Resolving...")
	case m.err != "":
		status = m.theme.StatusError.Render(m.err)
	}
	if status != "" {
		sections = append(sections, status)
	}

	hints := []string{"", m.theme.Subtitle.Render("Actions")}
	if m.message.Focused() {
		hints = append(hints,
			"  Press 'ctrl+s' to resolve",
			"  Press 'esc' to stop editing",
		)
	} else {
		hints = append(hints,
			"  Press 'm' to write a message",
			"  Press 'r' to resolve",
			"  Press 'esc' to return to list",
		)
	}
	sections = append(sections, strings.Join(hints, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
