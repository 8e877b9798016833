package tui

import (
	"time"

	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 5 * time.Second

// fetchPending starts one fetch per source. tea.Batch runs them
// concurrently and each result arrives as its own message.
func (m Model) fetchPending() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(grievance.Sources))
	for _, source := range grievance.Sources {
		cmds = append(cmds, m.fetchSource(source))
	}
	return tea.Batch(cmds...)
}

// fetchSource loads one source's pending grievances.
func (m Model) fetchSource(source model.UserType) tea.Cmd {
	ctx, svc, retry := m.ctx, m.board.Service(), m.board.RetryOptions()
	return func() tea.Msg {
		return fetchResultMsg{result: grievance.Fetch(ctx, svc, source, retry)}
	}
}

// resolve sends a resolution to the backend route for ref.
func (m Model) resolve(ref model.Ref, message string) tea.Cmd {
	ctx, svc := m.ctx, m.board.Service()
	return func() tea.Msg {
		return resolveResultMsg{
			ref: ref,
			err: grievance.Submit(ctx, svc, ref, message),
		}
	}
}

// clearStatusAfter schedules the status line to clear.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
