package tui

import (
	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
)

// fetchResultMsg delivers one source's pending grievances.
type fetchResultMsg struct {
	result grievance.FetchResult
}

// resolveResultMsg reports the outcome of a resolve call.
type resolveResultMsg struct {
	err error
	ref model.Ref
}

// clearStatusMsg clears the status line if it still shows message seq.
type clearStatusMsg struct {
	seq int
}
