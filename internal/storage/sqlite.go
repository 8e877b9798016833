package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.GrievanceStore using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

var _ service.GrievanceStore = (*SQLiteStorage)(nil)

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and :memory: needs
	// exactly one to keep its data.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// ListPending returns the pending grievances of one user type, oldest first.
func (s *SQLiteStorage) ListPending(ctx context.Context, userType model.UserType) ([]model.Grievance, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_type, name, email, phone, subject, message, status, raised_at
		FROM grievances
		WHERE user_type = ? AND status = ?
		ORDER BY raised_at, id`, string(userType), string(model.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending grievances: %w", err)
	}
	defer func() { _ = rows.Close() }()

	grievances := []model.Grievance{}
	for rows.Next() {
		g, scanErr := scanGrievance(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		grievances = append(grievances, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grievances: %w", err)
	}
	return grievances, nil
}

// GetGrievance returns one grievance or common.ErrNotFound.
func (s *SQLiteStorage) GetGrievance(ctx context.Context, userType model.UserType, id int) (*model.Grievance, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_type, name, email, phone, subject, message, status, raised_at
		FROM grievances
		WHERE user_type = ? AND id = ?`, string(userType), id)

	g, err := scanGrievance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, model.Ref{UserType: userType, ID: id})
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGrievance inserts g. A zero ID is replaced with the next free ID for
// its user type; an empty timestamp becomes now.
func (s *SQLiteStorage) CreateGrievance(ctx context.Context, g *model.Grievance) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGrievance(g); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if g.ID == 0 {
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(id), 0) + 1 FROM grievances WHERE user_type = ?`,
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

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO grievances (id, user_type, name, email, phone, subject, message, status, raised_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, string(g.UserType), g.Name, g.Email, g.Phone, g.Subject, g.Message, string(g.Status), g.Timestamp); err != nil {
		return fmt.Errorf("failed to insert grievance %s: %w", g.Ref(), err)
	}

	return tx.Commit()
}

// ResolveGrievance records the resolution message and flips the status.
// Unknown grievances return common.ErrNotFound, resolved ones
// common.ErrAlreadyResolved.
func (s *SQLiteStorage) ResolveGrievance(ctx context.Context, userType model.UserType, id int, message string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserType(userType); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ref := model.Ref{UserType: userType, ID: id}

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM grievances WHERE user_type = ? AND id = ?`,
		string(userType), id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, ref)
	}
	if err != nil {
		return fmt.Errorf("failed to load grievance %s: %w", ref, err)
	}
	if model.GrievanceStatus(status) == model.StatusResolved {
		return fmt.Errorf("%w: %s", common.ErrAlreadyResolved, ref)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE grievances
		SET status = ?, resolution = ?, resolved_at = CURRENT_TIMESTAMP
		WHERE user_type = ? AND id = ?`,
		string(model.StatusResolved), message, string(userType), id); err != nil {
		return fmt.Errorf("failed to resolve grievance %s: %w", ref, err)
	}

	return tx.Commit()
}

// Count returns the number of stored grievances of either type.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grievances`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count grievances: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGrievance(row scanner) (model.Grievance, error) {
	var (
		g                  model.Grievance
		userType, status   string
		email, phone, body sql.NullString
	)
	if err := row.Scan(&g.ID, &userType, &g.Name, &email, &phone, &g.Subject, &body, &status, &g.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return g, err
		}
		return g, fmt.Errorf("failed to scan grievance: %w", err)
	}
	g.UserType = model.UserType(userType)
	g.Status = model.GrievanceStatus(status)
	g.Email = email.String
	g.Phone = phone.String
	g.Message = body.String
	return g, nil
}
