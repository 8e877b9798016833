// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/backoffice/internal/model"
)

// GrievanceService is the contract of the schedule service as seen by the
// grievance board. Customer and guest grievances live behind separate
// endpoints and are fetched and resolved independently.
type GrievanceService interface {
	FetchPendingCustomerGrievances(ctx context.Context) ([]model.Grievance, error)
	FetchPendingGuestGrievances(ctx context.Context) ([]model.Grievance, error)
	ResolveCustomerGrievance(ctx context.Context, id int, message string) error
	ResolveGuestGrievance(ctx context.Context, id int, message string) error
}

// GrievanceStore is the persistence contract of the development backend.
type GrievanceStore interface {
	ListPending(ctx context.Context, userType model.UserType) ([]model.Grievance, error)
	GetGrievance(ctx context.Context, userType model.UserType, id int) (*model.Grievance, error)
	CreateGrievance(ctx context.Context, g *model.Grievance) error
	ResolveGrievance(ctx context.Context, userType model.UserType, id int, message string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Notifier surfaces events to the operator. Implementations decide where
// the message ends up (status bar, stderr, log).
type Notifier interface {
	Error(err error, context string)
	Info(message string)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
