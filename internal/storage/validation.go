// Package storage provides the grievance stores behind the development
// backend: SQLite by default, PostgreSQL when a database URL is configured.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidStatus    = errors.New("invalid grievance status")
	ErrInvalidGrievance = errors.New("invalid grievance")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateUserType(userType model.UserType) error {
	if !userType.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownUserType, userType)
	}
	return nil
}

// validateGrievance validates a grievance before insert.
func validateGrievance(g *model.Grievance) error {
	if g == nil {
		return fmt.Errorf("%w: grievance", ErrNilParameter)
	}
	if err := validateUserType(g.UserType); err != nil {
		return err
	}
	if g.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidGrievance, g.ID)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGrievance)
	}
	if strings.TrimSpace(g.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidGrievance)
	}
	switch g.Status {
	case "", model.StatusPending, model.StatusResolved:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, g.Status)
	}
	return nil
}
