package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebridge/internal/scheme/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// SchemePostgresStore persists the scheme catalog in PostgreSQL. The
// eligibility rule and benefit are JSONB documents.
type SchemePostgresStore struct {
	pool *pgxpool.Pool
}

func NewSchemePostgres(pool *pgxpool.Pool) *SchemePostgresStore {
	return &SchemePostgresStore{pool: pool}
}

func (s *SchemePostgresStore) Create(ctx context.Context, scheme *models.Scheme) error {
	rule, benefit, err := marshalScheme(scheme)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO schemes (id, name, department, description, rule, benefit, apply_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		scheme.ID.String(), scheme.Name, scheme.Department, scheme.Description,
		rule, benefit, scheme.ApplyLink, scheme.CreatedAt, scheme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scheme: %w", err)
	}
	return nil
}

func (s *SchemePostgresStore) Update(ctx context.Context, scheme *models.Scheme) error {
	rule, benefit, err := marshalScheme(scheme)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE schemes
		SET name = $2, department = $3, description = $4, rule = $5, benefit = $6, apply_link = $7, updated_at = $8
		WHERE id = $1`,
		scheme.ID.String(), scheme.Name, scheme.Department, scheme.Description,
		rule, benefit, scheme.ApplyLink, scheme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scheme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SchemePostgresStore) FindByID(ctx context.Context, id domain.SchemeID) (*models.Scheme, error) {
	rows, err := s.pool.Query(ctx, selectSchemes+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("find scheme: %w", err)
	}
	defer rows.Close()
	schemes, err := scanSchemes(rows)
	if err != nil {
		return nil, err
	}
	if len(schemes) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return schemes[0], nil
}

func (s *SchemePostgresStore) List(ctx context.Context) ([]*models.Scheme, error) {
	rows, err := s.pool.Query(ctx, selectSchemes+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()
	return scanSchemes(rows)
}

const selectSchemes = `
	SELECT id, name, department, description, rule, benefit, apply_link, created_at, updated_at
	FROM schemes`

func scanSchemes(rows pgx.Rows) ([]*models.Scheme, error) {
	var out []*models.Scheme
	for rows.Next() {
		var (
			scheme  models.Scheme
			rawID   string
			rule    []byte
			benefit []byte
		)
		err := rows.Scan(&rawID, &scheme.Name, &scheme.Department, &scheme.Description,
			&rule, &benefit, &scheme.ApplyLink, &scheme.CreatedAt, &scheme.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		id, err := domain.ParseSchemeID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt scheme id %q: %w", rawID, err)
		}
		scheme.ID = id
		if err := json.Unmarshal(rule, &scheme.Rule); err != nil {
			return nil, fmt.Errorf("decode scheme rule: %w", err)
		}
		if err := json.Unmarshal(benefit, &scheme.Benefit); err != nil {
			return nil, fmt.Errorf("decode scheme benefit: %w", err)
		}
		out = append(out, &scheme)
	}
	return out, rows.Err()
}

func marshalScheme(scheme *models.Scheme) (rule, benefit []byte, err error) {
	rule, err = json.Marshal(scheme.Rule)
	if err != nil {
		return nil, nil, fmt.Errorf("encode scheme rule: %w", err)
	}
	benefit, err = json.Marshal(scheme.Benefit)
	if err != nil {
		return nil, nil, fmt.Errorf("encode scheme benefit: %w", err)
	}
	return rule, benefit, nil
}

// ApplicationPostgresStore persists applications in PostgreSQL.
type ApplicationPostgresStore struct {
	pool *pgxpool.Pool
}

func NewApplicationPostgres(pool *pgxpool.Pool) *ApplicationPostgresStore {
	return &ApplicationPostgresStore{pool: pool}
}

func (s *ApplicationPostgresStore) Create(ctx context.Context, app *models.Application) error {
	docs, err := json.Marshal(app.Documents)
	if err != nil {
		return fmt.Errorf("encode application documents: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO scheme_applications (id, child_id, scheme_id, status, applied_at, documents, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID.String(), app.ChildID.String(), app.SchemeID.String(),
		string(app.Status), app.AppliedAt, docs, app.Notes, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *ApplicationPostgresStore) Update(ctx context.Context, app *models.Application) error {
	docs, err := json.Marshal(app.Documents)
	if err != nil {
		return fmt.Errorf("encode application documents: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE scheme_applications
		SET status = $2, documents = $3, notes = $4, updated_at = $5
		WHERE id = $1`,
		app.ID.String(), string(app.Status), docs, app.Notes, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *ApplicationPostgresStore) FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	rows, err := s.pool.Query(ctx, selectApplications+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	defer rows.Close()
	apps, err := scanApplications(rows)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return apps[0], nil
}

func (s *ApplicationPostgresStore) ListByChild(ctx context.Context, childID domain.ChildID) ([]*models.Application, error) {
	rows, err := s.pool.Query(ctx, selectApplications+` WHERE child_id = $1 ORDER BY applied_at`, childID.String())
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

const selectApplications = `
	SELECT id, child_id, scheme_id, status, applied_at, documents, notes, updated_at
	FROM scheme_applications`

func scanApplications(rows pgx.Rows) ([]*models.Application, error) {
	var out []*models.Application
	for rows.Next() {
		var (
			app       models.Application
			rawID     string
			rawChild  string
			rawScheme string
			rawStatus string
			docs      []byte
		)
		err := rows.Scan(&rawID, &rawChild, &rawScheme, &rawStatus,
			&app.AppliedAt, &docs, &app.Notes, &app.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		id, err := domain.ParseApplicationID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt application id %q: %w", rawID, err)
		}
		childID, err := domain.ParseChildID(rawChild)
		if err != nil {
			return nil, fmt.Errorf("corrupt child reference %q: %w", rawChild, err)
		}
		schemeID, err := domain.ParseSchemeID(rawScheme)
		if err != nil {
			return nil, fmt.Errorf("corrupt scheme reference %q: %w", rawScheme, err)
		}
		status, err := models.ParseApplicationStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("corrupt application status %q: %w", rawStatus, err)
		}
		app.ID = id
		app.ChildID = childID
		app.SchemeID = schemeID
		app.Status = status
		if err := json.Unmarshal(docs, &app.Documents); err != nil {
			return nil, fmt.Errorf("decode application documents: %w", err)
		}
		out = append(out, &app)
	}
	return out, rows.Err()
}
