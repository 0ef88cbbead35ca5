package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebridge/internal/donation/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// PostgresStore persists the donation ledger in PostgreSQL. The schema carries
// no UPDATE path: the table is written once per entry.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, donation *models.Donation) error {
	var targetKind, targetRef *string
	if donation.Target != nil {
		k := donation.Target.Kind.String()
		targetKind = &k
		targetRef = &donation.Target.Ref
	}
	var orphanage *string
	if donation.Orphanage != nil {
		o := donation.Orphanage.String()
		orphanage = &o
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO donations (id, donor_id, amount, message, fund_type, target_kind, target_ref, orphanage_id, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		donation.ID.String(), donation.DonorID.String(), donation.Amount, donation.Message,
		donation.FundType.String(), targetKind, targetRef, orphanage, donation.PaymentID, donation.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.DonationID) (*models.Donation, error) {
	rows, err := s.pool.Query(ctx, selectDonations+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("find donation: %w", err)
	}
	defer rows.Close()
	donations, err := scanDonations(rows)
	if err != nil {
		return nil, err
	}
	if len(donations) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return donations[0], nil
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID domain.AccountID) ([]*models.Donation, error) {
	rows, err := s.pool.Query(ctx, selectDonations+` WHERE donor_id = $1 ORDER BY created_at`, donorID.String())
	if err != nil {
		return nil, fmt.Errorf("list donations by donor: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Donation, error) {
	rows, err := s.pool.Query(ctx, selectDonations+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

const selectDonations = `
	SELECT id, donor_id, amount, message, fund_type, target_kind, target_ref, orphanage_id, payment_id, created_at
	FROM donations`

func scanDonations(rows pgx.Rows) ([]*models.Donation, error) {
	var out []*models.Donation
	for rows.Next() {
		var (
			donation   models.Donation
			rawID      string
			rawDonor   string
			rawFund    string
			targetKind *string
			targetRef  *string
			orphanage  *string
		)
		err := rows.Scan(&rawID, &rawDonor, &donation.Amount, &donation.Message,
			&rawFund, &targetKind, &targetRef, &orphanage, &donation.PaymentID, &donation.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		id, err := domain.ParseDonationID(rawID)
		if err != nil {
			return nil, fmt.Errorf("corrupt donation id %q: %w", rawID, err)
		}
		donation.ID = id
		donorID, err := domain.ParseAccountID(rawDonor)
		if err != nil {
			return nil, fmt.Errorf("corrupt donor id %q: %w", rawDonor, err)
		}
		donation.DonorID = donorID
		fundType, err := domain.ParseFundType(rawFund)
		if err != nil {
			return nil, fmt.Errorf("corrupt fund type %q: %w", rawFund, err)
		}
		donation.FundType = fundType
		if targetKind != nil && targetRef != nil {
			kind, err := domain.ParseTargetKind(*targetKind)
			if err != nil {
				return nil, fmt.Errorf("corrupt target kind %q: %w", *targetKind, err)
			}
			donation.Target = &models.Target{Kind: kind, Ref: *targetRef}
		}
		if orphanage != nil {
			orphanageID, err := domain.ParseAccountID(*orphanage)
			if err != nil {
				return nil, fmt.Errorf("corrupt orphanage id %q: %w", *orphanage, err)
			}
			donation.Orphanage = &orphanageID
		}
		out = append(out, &donation)
	}
	return out, rows.Err()
}
