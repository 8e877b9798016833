package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

// PostgresStorage implements service.GrievanceStore on a pgx pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

var _ service.GrievanceStore = (*PostgresStorage)(nil)

// NewPostgresStorage connects to url and verifies the connection.
func NewPostgresStorage(ctx context.Context, url string) (*PostgresStorage, error) {
	if err := validateString(url, "url"); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStorage{pool: pool}, nil
}

// Close releases the pool.
func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// Migrate creates the grievance schema if it does not exist.
func (p *PostgresStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS grievances (
			id INTEGER NOT NULL,
			user_type TEXT NOT NULL CHECK (user_type IN ('Customer', 'Guest')),
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			subject TEXT NOT NULL,
			message TEXT,
			status TEXT NOT NULL DEFAULT 'PENDING',
			raised_at TEXT NOT NULL,
			resolution TEXT,
			resolved_at TIMESTAMPTZ,
			PRIMARY KEY (user_type, id)
		);
		CREATE INDEX IF NOT EXISTS idx_grievances_status ON grievances(user_type, status);
	`)
	if err != nil {
		return fmt.Errorf("failed to create grievance schema: %w", err)
	}
	return nil
}

// ListPending returns the pending grievances of one user type, oldest first.
func (p *PostgresStorage) ListPending(ctx context.Context, userType model.UserType) ([]model.Grievance, error) {
	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, user_type, name, COALESCE(email, ''), COALESCE(phone, ''), subject, COALESCE(message, ''), status, raised_at
		FROM grievances
		WHERE user_type = $1 AND status = $2
		ORDER BY raised_at, id`, string(userType), string(model.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending grievances: %w", err)
	}

	grievances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Grievance, error) {
		return scanPgGrievance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read grievances: %w", err)
	}
	if grievances == nil {
		grievances = []model.Grievance{}
	}
	return grievances, nil
}

// GetGrievance returns one grievance or common.ErrNotFound.
func (p *PostgresStorage) GetGrievance(ctx context.Context, userType model.UserType, id int) (*model.Grievance, error) {
	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	row := p.pool.QueryRow(ctx, `
		SELECT id, user_type, name, COALESCE(email, ''), COALESCE(phone, ''), subject, COALESCE(message, ''), status, raised_at
		FROM grievances
		WHERE user_type = $1 AND id = $2`, string(userType), id)

	g, err := scanPgGrievance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, model.Ref{UserType: userType, ID: id})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load grievance: %w", err)
	}
	return &g, nil
}

// CreateGrievance inserts g, allocating an ID when g.ID is zero.
func (p *PostgresStorage) CreateGrievance(ctx context.Context, g *model.Grievance) (err error) {
	if err := validateGrievance(g); err != nil {
		return err
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if g.ID == 0 {
		// Serializes concurrent id allocation per user type.
		if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(g.UserType)); err != nil {
			return fmt.Errorf("failed to lock id allocation: %w", err)
		}
		if err = tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(id), 0) + 1 FROM grievances WHERE user_type = $1`,
			string(g.UserType)).Scan(&g.ID); err != nil {
			return fmt.Errorf("failed to allocate grievance id: %w", err)
		}
	}
	if g.Status == "" {
		g.Status = model.StatusPending
	}
	if g.Timestamp == "" {
		g.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO grievances (id, user_type, name, email, phone, subject, message, status, raised_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		g.ID, string(g.UserType), g.Name, g.Email, g.Phone, g.Subject, g.Message, string(g.Status), g.Timestamp); err != nil {
		return fmt.Errorf("failed to insert grievance %s: %w", g.Ref(), err)
	}

	return tx.Commit(ctx)
}

// ResolveGrievance flips a pending grievance to resolved.
func (p *PostgresStorage) ResolveGrievance(ctx context.Context, userType model.UserType, id int, message string) (err error) {
	if err := validateUserType(userType); err != nil {
		return err
	}
	ref := model.Ref{UserType: userType, ID: id}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM grievances WHERE user_type = $1 AND id = $2 FOR UPDATE`,
		string(userType), id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, ref)
	}
	if err != nil {
		return fmt.Errorf("failed to load grievance %s: %w", ref, err)
	}
	if model.GrievanceStatus(status) == model.StatusResolved {
		err = fmt.Errorf("%w: %s", common.ErrAlreadyResolved, ref)
		return err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE grievances SET status = $3, resolution = $4, resolved_at = now()
		WHERE user_type = $1 AND id = $2`,
		string(userType), id, string(model.StatusResolved), message); err != nil {
		return fmt.Errorf("failed to resolve grievance %s: %w", ref, err)
	}

	return tx.Commit(ctx)
}

// Count returns the number of stored grievances of either type.
func (p *PostgresStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grievances`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count grievances: %w", err)
	}
	return n, nil
}

func scanPgGrievance(row pgx.Row) (model.Grievance, error) {
	var (
		g                model.Grievance
		userType, status string
	)
	if err := row.Scan(&g.ID, &userType, &g.Name, &g.Email, &g.Phone, &g.Subject, &g.Message, &status, &g.Timestamp); err != nil {
		return g, err
	}
	g.UserType = model.UserType(userType)
	g.Status = model.GrievanceStatus(status)
	return g, nil
}
