package grievance

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

// Sources lists the grievance sources in merge order.
var Sources = []model.UserType{model.UserTypeCustomer, model.UserTypeGuest}

// FetchResult is the outcome of fetching one source.
type FetchResult struct {
	Err        error
	Source     model.UserType
	Grievances []model.Grievance
}

// Fetch loads the pending grievances of one source. Errors are wrapped in a
// common.SourceError naming the source.
func Fetch(ctx context.Context, svc service.GrievanceService, source model.UserType, retry service.RetryOptions) FetchResult {
	var fetch func(context.Context) ([]model.Grievance, error)
	switch source {
	case model.UserTypeCustomer:
		fetch = svc.FetchPendingCustomerGrievances
	case model.UserTypeGuest:
		fetch = svc.FetchPendingGuestGrievances
	default:
		return FetchResult{
			Source: source,
			Err:    &common.SourceError{Source: source, Err: fmt.Errorf("%w: %q", common.ErrUnknownUserType, source)},
		}
	}

	var records []model.Grievance
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		records, fetchErr = fetch(ctx)
		return fetchErr
	}, retry)
	if err != nil {
		return FetchResult{Source: source, Err: &common.SourceError{Source: source, Err: err}}
	}

	// Sources don't always stamp userType; the endpoint decides it.
	for i := range records {
		records[i].UserType = source
	}
	return FetchResult{Source: source, Grievances: records}
}

// Submit sends a resolution to the endpoint matching ref's user type.
func Submit(ctx context.Context, svc service.GrievanceService, ref model.Ref, message string) error {
	switch ref.UserType {
	case model.UserTypeCustomer:
		return svc.ResolveCustomerGrievance(ctx, ref.ID, message)
	case model.UserTypeGuest:
		return svc.ResolveGuestGrievance(ctx, ref.ID, message)
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownUserType, ref.UserType)
	}
}

// CheckMessage validates a resolution message. Blank messages are only
// rejected when required is set.
func CheckMessage(message string, required bool) error {
	if required && strings.TrimSpace(message) == "" {
		return common.ErrEmptyMessage
	}
	return nil
}

// ParseUserType accepts "customer" or "guest" in any case.
func ParseUserType(s string) (model.UserType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return model.UserTypeCustomer, nil
	case "guest":
		return model.UserTypeGuest, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownUserType, s)
	}
}
