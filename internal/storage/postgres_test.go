package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
)

// Set BACKOFFICE_TEST_DATABASE_URL to a disposable database to run these.
func createPostgresStorage(t *testing.T) *PostgresStorage {
	t.Helper()
	url := os.Getenv("BACKOFFICE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BACKOFFICE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := NewPostgresStorage(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx))
	_, err = store.pool.Exec(ctx, `TRUNCATE grievances`)
	require.NoError(t, err)
	return store
}

func TestPostgresStorage_Lifecycle(t *testing.T) {
	store := createPostgresStorage(t)
	ctx := context.Background()

	c := newGrievance(model.UserTypeCustomer, "alice", "Card blocked")
	g := newGrievance(model.UserTypeGuest, "bob", "Branch hours")
	require.NoError(t, store.CreateGrievance(ctx, c))
	require.NoError(t, store.CreateGrievance(ctx, g))
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, 1, g.ID)

	pending, err := store.ListPending(ctx, model.UserTypeCustomer)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].Name)

	require.NoError(t, store.ResolveGrievance(ctx, model.UserTypeCustomer, 1, "done"))
	assert.ErrorIs(t, store.ResolveGrievance(ctx, model.UserTypeCustomer, 1, "done"), common.ErrAlreadyResolved)
	assert.ErrorIs(t, store.ResolveGrievance(ctx, model.UserTypeCustomer, 42, "done"), common.ErrNotFound)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewPostgresStorage_BadURL(t *testing.T) {
	_, err := NewPostgresStorage(context.Background(), "://not-a-url")
	assert.Error(t, err)

	_, err = NewPostgresStorage(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyString)
}
