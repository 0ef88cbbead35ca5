package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebridge/internal/child/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// PostgresStore persists child profiles in PostgreSQL. Nested monitoring data
// (notes, documents, transition plan) lives in JSONB columns; the profile is
// always read and written as one aggregate.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

type childRow struct {
	Skills       []string                `json:"skills"`
	Academic     models.AcademicRecord   `json:"academic"`
	Behavioral   []models.BehavioralNote `json:"behavioral"`
	Transition   models.TransitionPlan   `json:"transition"`
	Achievements []domain.AchievementID  `json:"achievements"`
	Documents    []models.Document       `json:"documents"`
}

func (s *PostgresStore) Create(ctx context.Context, child *models.Child) error {
	blob, err := marshalNested(child)
	if err != nil {
		return err
	}
	var orphanage *string
	if child.Orphanage != nil {
		v := child.Orphanage.String()
		orphanage = &v
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO children (id, name, age, education, orphanage, attendance, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		child.ID.String(), child.Name, child.Age, child.Education, orphanage,
		child.Attendance, blob, child.CreatedAt, child.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert child: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, child *models.Child) error {
	blob, err := marshalNested(child)
	if err != nil {
		return err
	}
	var orphanage *string
	if child.Orphanage != nil {
		v := child.Orphanage.String()
		orphanage = &v
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE children
		SET name = $2, age = $3, education = $4, orphanage = $5, attendance = $6, profile = $7, updated_at = $8
		WHERE id = $1`,
		child.ID.String(), child.Name, child.Age, child.Education, orphanage,
		child.Attendance, blob, child.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update child: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ChildID) (*models.Child, error) {
	rows, err := s.pool.Query(ctx, selectChildren+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("find child: %w", err)
	}
	defer rows.Close()
	children, err := scanChildren(rows)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return children[0], nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Child, error) {
	rows, err := s.pool.Query(ctx, selectChildren+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	return scanChildren(rows)
}

func (s *PostgresStore) ListByOrphanage(ctx context.Context, orphanage domain.AccountID) ([]*models.Child, error) {
	rows, err := s.pool.Query(ctx, selectChildren+` WHERE orphanage = $1 ORDER BY created_at`, orphanage.String())
	if err != nil {
		return nil, fmt.Errorf("list children by orphanage: %w", err)
	}
	defer rows.Close()
	return scanChildren(rows)
}

const selectChildren = `
	SELECT id, name, age, education, orphanage, attendance, profile, created_at, updated_at
	FROM children`

func scanChildren(rows pgx.Rows) ([]*models.Child, error) {
	var out []*models.Child
	for rows.Next() {
		var (
			child     models.Child
			rawID     string
			orphanage *string
			blob      []byte
		)
		err := rows.Scan(&rawID, &child.Name, &child.Age, &child.Education,
			&orphanage, &child.Attendance, &blob, &child.CreatedAt, &child.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}

		id, err := domain.ParseChildID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt child id %q: %w", rawID, err)
		}
		child.ID = id

		if orphanage != nil {
			// The column is typed uuid so free-text orphanage values cannot
			// exist, but the reference is still re-parsed on the way out.
			accountID, err := domain.ParseAccountID(*orphanage)
			if err != nil {
				return nil, fmt.Errorf("corrupt orphanage reference %q: %w", *orphanage, err)
			}
			child.Orphanage = &accountID
		}

		var nested childRow
		if err := json.Unmarshal(blob, &nested); err != nil {
			return nil, fmt.Errorf("decode child profile: %w", err)
		}
		child.Skills = nested.Skills
		child.Academic = nested.Academic
		child.Behavioral = nested.Behavioral
		child.Transition = nested.Transition
		child.Achievements = nested.Achievements
		child.Documents = nested.Documents

		out = append(out, &child)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func marshalNested(child *models.Child) ([]byte, error) {
	blob, err := json.Marshal(childRow{
		Skills:       child.Skills,
		Academic:     child.Academic,
		Behavioral:   child.Behavioral,
		Transition:   child.Transition,
		Achievements: child.Achievements,
		Documents:    child.Documents,
	})
	if err != nil {
		return nil, fmt.Errorf("encode child profile: %w", err)
	}
	return blob, nil
}
