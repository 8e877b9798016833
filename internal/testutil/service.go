package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

// Resolution is one resolve call seen by FakeService.
type Resolution struct {
	Message string
	Ref     model.Ref
}

// FakeService is an in-memory service.GrievanceService. Set the error
// fields to make the matching call fail.
type FakeService struct {
	CustomerErr error
	GuestErr    error
	ResolveErr  error
	Customers   []model.Grievance
	Guests      []model.Grievance
	Resolved    []Resolution
	mu          sync.Mutex
}

var _ service.GrievanceService = (*FakeService)(nil)

// FetchPendingCustomerGrievances returns Customers or CustomerErr.
func (f *FakeService) FetchPendingCustomerGrievances(_ context.Context) ([]model.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CustomerErr != nil {
		return nil, f.CustomerErr
	}
	return append([]model.Grievance(nil), f.Customers...), nil
}

// FetchPendingGuestGrievances returns Guests or GuestErr.
func (f *FakeService) FetchPendingGuestGrievances(_ context.Context) ([]model.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GuestErr != nil {
		return nil, f.GuestErr
	}
	return append([]model.Grievance(nil), f.Guests...), nil
}

// ResolveCustomerGrievance records the call.
func (f *FakeService) ResolveCustomerGrievance(_ context.Context, id int, message string) error {
	return f.resolve(model.Ref{UserType: model.UserTypeCustomer, ID: id}, message)
}

// ResolveGuestGrievance records the call.
func (f *FakeService) ResolveGuestGrievance(_ context.Context, id int, message string) error {
	return f.resolve(model.Ref{UserType: model.UserTypeGuest, ID: id}, message)
}

func (f *FakeService) resolve(ref model.Ref, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ResolveErr != nil {
		return f.ResolveErr
	}
	f.Resolved = append(f.Resolved, Resolution{Ref: ref, Message: message})
	return nil
}

// Calls returns a copy of the recorded resolutions.
func (f *FakeService) Calls() []Resolution {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Resolution(nil), f.Resolved...)
}
