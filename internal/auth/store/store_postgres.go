package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebridge/internal/auth/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists accounts in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, account *models.Account) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID.String(), account.Name, account.Email, account.PasswordHash,
		account.Role.String(), account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.AccountID) (*models.Account, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM accounts WHERE id = $1`, id.String()))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM accounts WHERE email = lower($1)`, email))
}

func (s *PostgresStore) ListByRole(ctx context.Context, role domain.Role) ([]*models.Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM accounts WHERE role = $1 ORDER BY created_at`, role.String())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*models.Account
	for rows.Next() {
		account, err := s.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, account)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row rowScanner) (*models.Account, error) {
	var (
		account models.Account
		rawID   string
		rawRole string
	)
	err := row.Scan(&rawID, &account.Name, &account.Email, &account.PasswordHash,
		&rawRole, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	id, err := domain.ParseAccountID(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt account id %q: %w", rawID, err)
	}
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, fmt.Errorf("corrupt account role %q: %w", rawRole, err)
	}
	account.ID = id
	account.Role = role
	return &account, nil
}
