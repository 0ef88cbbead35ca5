package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/child/models"
	"carebridge/internal/child/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
	"carebridge/pkg/requestcontext"
)

// fakeDirectory maps account IDs to roles; unknown IDs are not found.
type fakeDirectory map[domain.AccountID]domain.Role

func (d fakeDirectory) RoleOf(_ context.Context, id domain.AccountID) (domain.Role, error) {
	role, ok := d[id]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return role, nil
}

func intPtr(v int) *int { return &v }

func newTestService(dir fakeDirectory) (*Service, *notify.MemoryPublisher) {
	events := notify.NewMemoryPublisher()
	svc := New(store.NewMemoryStore(), dir, slog.New(slog.DiscardHandler), WithEvents(events))
	return svc, events
}

func TestCreate(t *testing.T) {
	orphanage := domain.AccountID(uuid.New())
	donor := domain.AccountID(uuid.New())
	dir := fakeDirectory{orphanage: domain.RoleOrphanage, donor: domain.RoleDonor}
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	t.Run("registers child with valid orphanage", func(t *testing.T) {
		svc, events := newTestService(dir)
		child, err := svc.Create(ctx, CreateInput{Name: "Meena", Age: intPtr(12), Orphanage: &orphanage})
		require.NoError(t, err)
		assert.Equal(t, 100, child.Attendance, "attendance defaults to 100")
		require.NotNil(t, child.Orphanage)
		assert.Equal(t, orphanage, *child.Orphanage)

		published := events.Events()
		require.Len(t, published, 1)
		assert.Equal(t, notify.KindNewChild, published[0].Kind)
	})

	t.Run("allows nil orphanage pending assignment", func(t *testing.T) {
		svc, _ := newTestService(dir)
		child, err := svc.Create(ctx, CreateInput{Name: "Arun"})
		require.NoError(t, err)
		assert.Nil(t, child.Orphanage)
	})

	t.Run("rejects non-orphanage reference", func(t *testing.T) {
		svc, _ := newTestService(dir)
		_, err := svc.Create(ctx, CreateInput{Name: "Meena", Orphanage: &donor})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects dangling reference", func(t *testing.T) {
		svc, _ := newTestService(dir)
		missing := domain.AccountID(uuid.New())
		_, err := svc.Create(ctx, CreateInput{Name: "Meena", Orphanage: &missing})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newTestService(dir)
		_, err := svc.Create(ctx, CreateInput{Name: "   "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("dedupes skills", func(t *testing.T) {
		svc, _ := newTestService(dir)
		child, err := svc.Create(ctx, CreateInput{Name: "Meena", Skills: []string{" drawing ", "drawing", "music"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"drawing", "music"}, child.Skills)
	})
}

func TestAppendNoteIsAppendOnly(t *testing.T) {
	dir := fakeDirectory{}
	svc, _ := newTestService(dir)
	ctx := context.Background()

	child, err := svc.Create(ctx, CreateInput{Name: "Meena"})
	require.NoError(t, err)

	_, err = svc.AppendNote(ctx, child.ID, "settled in well", domain.SeverityLow)
	require.NoError(t, err)
	updated, err := svc.AppendNote(ctx, child.ID, "difficult week", domain.SeverityHigh)
	require.NoError(t, err)

	require.Len(t, updated.Behavioral, 2)
	assert.Equal(t, "settled in well", updated.Behavioral[0].Text)
	assert.Equal(t, domain.SeverityHigh, updated.Behavioral[1].Severity)
}

func TestUpdateValidation(t *testing.T) {
	dir := fakeDirectory{}
	svc, _ := newTestService(dir)
	ctx := context.Background()

	child, err := svc.Create(ctx, CreateInput{Name: "Meena"})
	require.NoError(t, err)

	t.Run("attendance out of range", func(t *testing.T) {
		_, err := svc.Update(ctx, child.ID, UpdateInput{Attendance: intPtr(120)})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("performance out of range", func(t *testing.T) {
		_, err := svc.Update(ctx, child.ID, UpdateInput{Academic: &models.AcademicRecord{Performance: -1}})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("unknown child is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, domain.ChildID(uuid.New()), UpdateInput{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestSetDocument(t *testing.T) {
	dir := fakeDirectory{}
	svc, _ := newTestService(dir)
	ctx := context.Background()

	child, err := svc.Create(ctx, CreateInput{Name: "Meena"})
	require.NoError(t, err)

	updated, err := svc.SetDocument(ctx, child.ID, models.Document{
		Type:    domain.DocumentTypeAadhaar,
		Locator: "uploads/abc",
		Status:  domain.DocumentStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, updated.Documents, 1)

	// Same type overwrites the slot rather than appending.
	updated, err = svc.SetDocument(ctx, child.ID, models.Document{
		Type:   domain.DocumentTypeAadhaar,
		Status: domain.DocumentStatusVerified,
	})
	require.NoError(t, err)
	require.Len(t, updated.Documents, 1)
	assert.True(t, updated.HasVerifiedDocument(domain.DocumentTypeAadhaar))
}
