// Package grievance holds the state of the grievance board: the merged list
// of pending grievances from both sources, the current page, the grievance
// open for detail, and the resolve transition.
//
// A Board is not safe for concurrent use. It is owned by one goroutine;
// fetches run elsewhere and hand their results back through Apply.
package grievance

import (
	"context"
	"errors"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

// Board is the grievance board state.
type Board struct {
	svc      service.GrievanceService
	notifier service.Notifier
	selected *model.Ref
	// Per-source lists keep the merge order fixed no matter which fetch
	// lands first.
	customer       []model.Grievance
	guest          []model.Grievance
	retry          service.RetryOptions
	page           int
	pageSize       int
	requireMessage bool
}

// Option configures a Board.
type Option func(*Board)

// WithNotifier sets where fetch and resolve failures are reported.
func WithNotifier(n service.Notifier) Option {
	return func(b *Board) {
		if n != nil {
			b.notifier = n
		}
	}
}

// WithPageSize overrides the page size.
func WithPageSize(size int) Option {
	return func(b *Board) {
		if size > 0 {
			b.pageSize = size
		}
	}
}

// WithRequireMessage rejects blank resolution messages before any backend
// call.
func WithRequireMessage(required bool) Option {
	return func(b *Board) {
		b.requireMessage = required
	}
}

// WithFetchRetry sets the retry policy for pending fetches.
func WithFetchRetry(opts service.RetryOptions) Option {
	return func(b *Board) {
		b.retry = opts
	}
}

// NewBoard creates an empty board backed by svc.
func NewBoard(svc service.GrievanceService, opts ...Option) *Board {
	b := &Board{
		svc:      svc,
		notifier: common.LogNotifier{},
		pageSize: PageSize,
		retry:    service.RetryOptions{MaxAttempts: 1},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Service returns the backing grievance service.
func (b *Board) Service() service.GrievanceService {
	return b.svc
}

// RetryOptions returns the fetch retry policy.
func (b *Board) RetryOptions() service.RetryOptions {
	return b.retry
}

// RequireMessage reports whether blank resolution messages are rejected.
func (b *Board) RequireMessage() bool {
	return b.requireMessage
}

// LoadPending fetches both sources concurrently and applies each result as
// it arrives. A failed source is left empty and reported; it never hides the
// other source. The returned error joins the per-source failures.
func (b *Board) LoadPending(ctx context.Context) error {
	results := make(chan FetchResult, len(Sources))
	for _, source := range Sources {
		go func(source model.UserType) {
			results <- Fetch(ctx, b.svc, source, b.retry)
		}(source)
	}

	var errs []error
	for range Sources {
		res := <-results
		if err := b.Apply(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Apply replaces one source's records with a fetch result. On error the
// source is emptied and the failure is reported and returned.
func (b *Board) Apply(res FetchResult) error {
	records := res.Grievances
	if res.Err != nil {
		records = nil
		b.notifier.Error(res.Err, "Failed to fetch "+string(res.Source)+" grievances")
	}

	switch res.Source {
	case model.UserTypeCustomer:
		b.customer = records
	case model.UserTypeGuest:
		b.guest = records
	}

	b.clampPage()
	return res.Err
}

// Grievances returns the merged list: customer records then guest records,
// each in the order received.
func (b *Board) Grievances() []model.Grievance {
	merged := make([]model.Grievance, 0, len(b.customer)+len(b.guest))
	merged = append(merged, b.customer...)
	return append(merged, b.guest...)
}

// Len returns the number of grievances on the board.
func (b *Board) Len() int {
	return len(b.customer) + len(b.guest)
}

// PendingCount returns how many grievances are still pending.
func (b *Board) PendingCount() int {
	n := 0
	for _, g := range b.Grievances() {
		if g.IsPending() {
			n++
		}
	}
	return n
}

// PageSize returns the page size.
func (b *Board) PageSize() int {
	return b.pageSize
}

// PageIndex returns the zero-based current page.
func (b *Board) PageIndex() int {
	return b.page
}

// PageCount returns the number of pages, at least one.
func (b *Board) PageCount() int {
	if n := PageCount(b.Len(), b.pageSize); n > 0 {
		return n
	}
	return 1
}

// Page returns the grievances on the current page.
func (b *Board) Page() []model.Grievance {
	return Paginate(b.Grievances(), b.page, b.pageSize)
}

// SetPage moves to page, clamped to the available pages.
func (b *Board) SetPage(page int) {
	b.page = page
	b.clampPage()
}

// NextPage advances one page if possible.
func (b *Board) NextPage() {
	b.SetPage(b.page + 1)
}

// PrevPage goes back one page if possible.
func (b *Board) PrevPage() {
	b.SetPage(b.page - 1)
}

func (b *Board) clampPage() {
	if last := b.PageCount() - 1; b.page > last {
		b.page = last
	}
	if b.page < 0 {
		b.page = 0
	}
}

// Find returns the grievance for ref.
func (b *Board) Find(ref model.Ref) (model.Grievance, bool) {
	if g := b.find(ref); g != nil {
		return *g, true
	}
	return model.Grievance{}, false
}

func (b *Board) find(ref model.Ref) *model.Grievance {
	var list []model.Grievance
	switch ref.UserType {
	case model.UserTypeCustomer:
		list = b.customer
	case model.UserTypeGuest:
		list = b.guest
	}
	for i := range list {
		if list[i].ID == ref.ID {
			return &list[i]
		}
	}
	return nil
}

// Open selects a grievance for detail viewing.
func (b *Board) Open(ref model.Ref) {
	b.selected = &ref
}

// Close clears the selection.
func (b *Board) Close() {
	b.selected = nil
}

// Selected returns the grievance open for detail, if any.
func (b *Board) Selected() (model.Grievance, bool) {
	if b.selected == nil {
		return model.Grievance{}, false
	}
	return b.Find(*b.selected)
}

// IsOpen reports whether a detail view is open.
func (b *Board) IsOpen() bool {
	return b.selected != nil
}

// Resolve sends message for ref to the matching backend route. On success
// the grievance is marked resolved and the detail view closes; on failure
// nothing changes and the error is reported.
func (b *Board) Resolve(ctx context.Context, ref model.Ref, message string) error {
	if err := CheckMessage(message, b.requireMessage); err != nil {
		return common.NewUserError("Resolution message is required", err)
	}
	err := Submit(ctx, b.svc, ref, message)
	return b.ApplyResolution(ref, err)
}

// ApplyResolution records the outcome of a resolve call made elsewhere.
func (b *Board) ApplyResolution(ref model.Ref, err error) error {
	if err != nil {
		b.notifier.Error(err, "Failed to resolve grievance "+ref.String())
		return common.NewUserError("Failed to resolve grievance", err)
	}

	if g := b.find(ref); g != nil {
		g.Status = model.StatusResolved
	}
	b.Close()
	b.notifier.Info("Grievance " + ref.String() + " resolved")
	return nil
}
