package components

import (
	"testing"
	"time"

	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/testutil"
	"github.com/Veraticus/backoffice/internal/tui/themes"
	"github.com/Veraticus/backoffice/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func listView(n int) viewmodel.GrievanceListView {
	rows := testutil.Grievances(model.UserTypeCustomer, n)
	return viewmodel.NewGrievanceList(rows, 0, 10, 2, 14, 14)
}

func TestGrievanceList_OpenEmitsSelectedRef(t *testing.T) {
	m := NewGrievanceList(themes.Default).SetView(listView(3))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(GrievanceSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, model.Ref{UserType: model.UserTypeCustomer, ID: 2}, msg.Ref)
}

func TestGrievanceList_OpenOnEmptyPage(t *testing.T) {
	m := NewGrievanceList(themes.Default).SetView(viewmodel.GrievanceListView{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No grievances to show")
}

func TestGrievanceList_PageKeys(t *testing.T) {
	tests := []struct {
		key   tea.KeyMsg
		name  string
		delta int
	}{
		{name: "right", key: tea.KeyMsg{Type: tea.KeyRight}, delta: 1},
		{name: "l", key: runes("l"), delta: 1},
		{name: "left", key: tea.KeyMsg{Type: tea.KeyLeft}, delta: -1},
		{name: "pgup", key: tea.KeyMsg{Type: tea.KeyPgUp}, delta: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewGrievanceList(themes.Default).SetView(listView(3))
			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, PageRequestMsg{Delta: tt.delta}, cmd())
		})
	}
}

func TestGrievanceList_SetViewClampsCursor(t *testing.T) {
	m := NewGrievanceList(themes.Default).SetView(listView(5))
	for i := 0; i < 4; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	row, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 5, row.Index)

	m = m.SetView(listView(2))
	row, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, row.Index)
}

func TestGrievanceList_View(t *testing.T) {
	m := NewGrievanceList(themes.Default)
	m.Resize(140, 30)
	m = m.SetView(listView(3))

	out := m.View()
	assert.Contains(t, out, "Customer 1")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "14 pending of 14")
}

func newDetail(status model.GrievanceStatus) GrievanceDetailModel {
	g := testutil.Grievances(model.UserTypeGuest, 1)[0]
	g.Status = status
	return NewGrievanceDetail(g, detail.NewDateFormatter("", time.UTC), themes.Default)
}

func TestGrievanceDetail_TypeAndSubmit(t *testing.T) {
	m := newDetail(model.StatusPending)
	assert.Contains(t, m.View(), MessagePlaceholder)

	m, _ = m.Update(runes("m"))
	require.True(t, m.Editing())

	m, _ = m.Update(runes("Refunded"))
	assert.Equal(t, "Refunded", m.Message())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())
	assert.False(t, m.Editing())
	assert.Equal(t, ResolveRequestedMsg{
		Ref:     model.Ref{UserType: model.UserTypeGuest, ID: 1},
		Message: "Refunded",
	}, cmd())

	// keys are ignored while the call is in flight
	_, cmd = m.Update(runes("r"))
	assert.Nil(t, cmd)
}

func TestGrievanceDetail_ResolveWithEmptyMessage(t *testing.T) {
	m := newDetail(model.StatusPending)

	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	req, ok := cmd().(ResolveRequestedMsg)
	require.True(t, ok)
	assert.Empty(t, req.Message)
}

func TestGrievanceDetail_EscapeBlursThenGoesBack(t *testing.T) {
	m := newDetail(model.StatusPending)
	m, _ = m.Update(runes("m"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, m.Editing())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackToListMsg{}, cmd())
}

func TestGrievanceDetail_Failed(t *testing.T) {
	m := newDetail(model.StatusPending)
	m, _ = m.Update(runes("m"))
	m, _ = m.Update(runes("Handled"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	m = m.Failed("Failed to resolve grievance")
	assert.False(t, m.Submitting())
	assert.Equal(t, "Handled", m.Message())
	assert.Contains(t, m.View(), "Failed to resolve grievance")
}

func TestGrievanceDetail_AlreadyResolved(t *testing.T) {
	m := newDetail(model.StatusResolved)

	m, cmd := m.Update(runes("r"))
	assert.Nil(t, cmd)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.View(), "already resolved")
}

func TestRenderDetailView(t *testing.T) {
	c := &model.Customer{CustomerID: "123", DOB: "1990-01-01", IsPresentlyEmployed: true}
	out := RenderDetailView(detail.CardUpgradeApplicationView(c, detail.NewDateFormatter("", time.UTC)), themes.Default, 100)

	assert.Contains(t, out, detail.ActivePendingUpgrades)
	assert.Contains(t, out, "Customer ID:")
	assert.Contains(t, out, "1/1/1990")
	assert.Contains(t, out, "Yes")
	assert.Contains(t, out, "(not provided)")
}
