package viewmodel

import (
	"fmt"
	"strings"

	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
)

// GrievanceListView represents one page of the grievance board.
type GrievanceListView struct {
	Rows      []GrievanceRowView
	Page      int
	PageCount int
	Total     int
	Pending   int
}

// GrievanceRowView represents a single grievance in the list.
type GrievanceRowView struct {
	Ref       model.Ref
	UserType  string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Timestamp string
	Status    string
	Index     int
	Resolved  bool
}

// NewGrievanceList builds the view for page (zero-based) of a board whose
// page size is pageSize.
func NewGrievanceList(rows []model.Grievance, page, pageSize, pageCount, total, pending int) GrievanceListView {
	view := GrievanceListView{
		Rows:      make([]GrievanceRowView, 0, len(rows)),
		Page:      page,
		PageCount: pageCount,
		Total:     total,
		Pending:   pending,
	}
	for i, g := range rows {
		view.Rows = append(view.Rows, GrievanceRowView{
			Index:     grievance.DisplayIndex(page, pageSize, i),
			Ref:       g.Ref(),
			UserType:  string(g.UserType),
			Name:      g.Name,
			Email:     g.Email,
			Phone:     g.Phone,
			Subject:   g.Subject,
			Timestamp: g.Timestamp,
			Status:    string(g.Status),
			Resolved:  g.Status == model.StatusResolved,
		})
	}
	return view
}

// FromBoard builds the view of the board's current page.
func FromBoard(b *grievance.Board) GrievanceListView {
	return NewGrievanceList(b.Page(), b.PageIndex(), b.PageSize(), b.PageCount(), b.Len(), b.PendingCount())
}

// IsEmpty returns true if the page has no grievances.
func (v GrievanceListView) IsEmpty() bool {
	return len(v.Rows) == 0
}

// PageLabel renders the one-based page position, e.g. "Page 2 of 3".
func (v GrievanceListView) PageLabel() string {
	count := v.PageCount
	if count < 1 {
		count = 1
	}
	return fmt.Sprintf("Page %d of %d", v.Page+1, count)
}

// Summary renders the pending/total counter.
func (v GrievanceListView) Summary() string {
	return fmt.Sprintf("%d pending of %d", v.Pending, v.Total)
}

// Cells returns the table cells for the row.
func (r GrievanceRowView) Cells() []string {
	return []string{
		fmt.Sprintf("%d", r.Index),
		r.UserType,
		r.Name,
		r.Email,
		r.Phone,
		r.Subject,
		r.Timestamp,
		r.Status,
	}
}

// Columns are the list column titles in display order.
var Columns = []string{"#", "Type", "Name", "Email", "Phone", "Subject", "Raised", "Status"}

// Truncate shortens s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return strings.TrimRight(string(r[:width-1]), " ") + "…"
}
