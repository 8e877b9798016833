// Package testutil provides shared fixtures for grievance tests: an
// in-memory store and a scriptable schedule service.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/storage"
)

// TestDB represents a migrated in-memory grievance store.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with grievances.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.Grievances(model.UserTypeCustomer, 3)...,
//	)
func SetupTestDB(t *testing.T, seed ...model.Grievance) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range seed {
		if err := store.CreateGrievance(ctx, &seed[i]); err != nil {
			t.Fatalf("failed to seed grievance %s: %v", seed[i].Ref(), err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustGet returns the stored grievance or fails the test.
func (db *TestDB) MustGet(ref model.Ref) model.Grievance {
	db.t.Helper()
	g, err := db.Storage.GetGrievance(context.Background(), ref.UserType, ref.ID)
	if err != nil {
		db.t.Fatalf("grievance %s: %v", ref, err)
	}
	return *g
}

// Grievances builds n pending grievances of userType named "<type> 1".."<type> n".
func Grievances(userType model.UserType, n int) []model.Grievance {
	out := make([]model.Grievance, n)
	for i := range out {
		out[i] = model.Grievance{
			ID:        i + 1,
			UserType:  userType,
			Name:      fmt.Sprintf("%s %d", userType, i+1),
			Email:     fmt.Sprintf("%s%d@example.com", userType, i+1),
			Phone:     fmt.Sprintf("555-01%02d", i+1),
			Subject:   fmt.Sprintf("Issue %d", i+1),
			Timestamp: fmt.Sprintf("2024-01-%02dT10:00:00Z", i%28+1),
			Status:    model.StatusPending,
		}
	}
	return out
}
