package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebridge/internal/medical/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// PostgresStore persists medical cases in PostgreSQL. Cost items are a JSONB
// document; the running total lives in its own column so contributions stay a
// single-row update.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.MedicalCase) error {
	items, err := json.Marshal(c.CostItems)
	if err != nil {
		return fmt.Errorf("encode cost items: %w", err)
	}
	var childID *string
	if c.ChildID != nil {
		v := c.ChildID.String()
		childID = &v
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO medical_cases (id, child_id, orphanage_id, title, description, urgency, cost_items, target_amount, amount_raised, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID.String(), childID, c.Orphanage.String(), c.Title, c.Description,
		c.Urgency.String(), items, c.TargetAmount, c.AmountRaised, string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert medical case: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.MedicalCase) error {
	items, err := json.Marshal(c.CostItems)
	if err != nil {
		return fmt.Errorf("encode cost items: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE medical_cases
		SET title = $2, description = $3, urgency = $4, cost_items = $5, target_amount = $6, amount_raised = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		c.ID.String(), c.Title, c.Description, c.Urgency.String(), items,
		c.TargetAmount, c.AmountRaised, string(c.Status), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medical case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.MedicalCaseID) (*models.MedicalCase, error) {
	rows, err := s.pool.Query(ctx, selectCases+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("find medical case: %w", err)
	}
	defer rows.Close()
	cases, err := scanCases(rows)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return cases[0], nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.MedicalCase, error) {
	rows, err := s.pool.Query(ctx, selectCases+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list medical cases: %w", err)
	}
	defer rows.Close()
	return scanCases(rows)
}

const selectCases = `
	SELECT id, child_id, orphanage_id, title, description, urgency, cost_items, target_amount, amount_raised, status, created_at, updated_at
	FROM medical_cases`

func scanCases(rows pgx.Rows) ([]*models.MedicalCase, error) {
	var out []*models.MedicalCase
	for rows.Next() {
		var (
			c          models.MedicalCase
			rawID      string
			rawChild   *string
			rawOrphan  string
			rawUrgency string
			rawStatus  string
			items      []byte
		)
		err := rows.Scan(&rawID, &rawChild, &rawOrphan, &c.Title, &c.Description,
			&rawUrgency, &items, &c.TargetAmount, &c.AmountRaised, &rawStatus, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan medical case: %w", err)
		}
		id, err := domain.ParseMedicalCaseID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt medical case id %q: %w", rawID, err)
		}
		c.ID = id
		if rawChild != nil {
			childID, err := domain.ParseChildID(*rawChild)
			if err != nil {
				return nil, fmt.Errorf("corrupt child id %q: %w", *rawChild, err)
			}
			c.ChildID = &childID
		}
		orphanage, err := domain.ParseAccountID(rawOrphan)
		if err != nil {
			return nil, fmt.Errorf("corrupt orphanage id %q: %w", rawOrphan, err)
		}
		c.Orphanage = orphanage
		urgency, err := domain.ParseUrgency(rawUrgency)
		if err != nil {
			return nil, fmt.Errorf("corrupt urgency %q: %w", rawUrgency, err)
		}
		c.Urgency = urgency
		c.Status = models.CaseStatus(rawStatus)
		if err := json.Unmarshal(items, &c.CostItems); err != nil {
			return nil, fmt.Errorf("decode cost items: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
