package components

import "github.com/Veraticus/backoffice/internal/model"

// GrievanceSelectedMsg requests the detail view for a grievance.
type GrievanceSelectedMsg struct {
	Ref model.Ref
}

// PageRequestMsg asks the board to move by Delta pages.
type PageRequestMsg struct {
	Delta int
}

// BackToListMsg requests to go back to the grievance list.
type BackToListMsg struct{}

// ResolveRequestedMsg carries a resolution the operator submitted.
type ResolveRequestedMsg struct {
	Message string
	Ref     model.Ref
}
