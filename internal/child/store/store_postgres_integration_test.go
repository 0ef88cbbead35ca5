//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"carebridge/internal/child/models"
	"carebridge/internal/child/store"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
	"carebridge/pkg/testutil/containers"
)

type PostgresChildrenSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresChildrenSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresChildrenSuite))
}

func (s *PostgresChildrenSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresChildrenSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "children")
	s.Require().NoError(err)
}

func (s *PostgresChildrenSuite) newChild(name string, at time.Time) *models.Child {
	age := 12
	child, err := models.NewChild(domain.ChildID(uuid.New()), name, &age, at)
	s.Require().NoError(err)
	return child
}

func (s *PostgresChildrenSuite) TestRoundTripKeepsAttendanceExact() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	orphanage := domain.AccountID(uuid.New())

	child := s.newChild("Amina", now)
	child.Orphanage = &orphanage
	child.Education = "primary"
	child.Skills = []string{"drawing", "chess"}

	s.Require().NoError(s.store.Create(ctx, child))

	got, err := s.store.FindByID(ctx, child.ID)
	s.Require().NoError(err)
	s.Equal(child.ID, got.ID)
	s.Equal("Amina", got.Name)
	s.Equal(100, got.Attendance)
	s.Require().NotNil(got.Orphanage)
	s.Equal(orphanage, *got.Orphanage)
	s.Equal([]string{"drawing", "chess"}, got.Skills)

	s.Require().NoError(got.SetAttendance(87, now.Add(time.Minute)))
	s.Require().NoError(s.store.Update(ctx, got))

	updated, err := s.store.FindByID(ctx, child.ID)
	s.Require().NoError(err)
	s.Equal(87, updated.Attendance)
}

func (s *PostgresChildrenSuite) TestListByOrphanageFilters() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	mine := domain.AccountID(uuid.New())
	theirs := domain.AccountID(uuid.New())

	a := s.newChild("Ben", now)
	a.Orphanage = &mine
	b := s.newChild("Clara", now.Add(time.Second))
	b.Orphanage = &mine
	other := s.newChild("Dima", now)
	other.Orphanage = &theirs

	for _, c := range []*models.Child{a, b, other} {
		s.Require().NoError(s.store.Create(ctx, c))
	}

	got, err := s.store.ListByOrphanage(ctx, mine)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(a.ID, got[0].ID)
	s.Equal(b.ID, got[1].ID)
}

func (s *PostgresChildrenSuite) TestUpdateMissing() {
	child := s.newChild("Eli", time.Now().UTC())
	s.Require().ErrorIs(s.store.Update(context.Background(), child), sentinel.ErrNotFound)
}
