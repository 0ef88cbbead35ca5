package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authmodels "carebridge/internal/auth/models"
	childadapters "carebridge/internal/child/adapters"
	"carebridge/internal/donation/models"
	"carebridge/internal/donation/service/mocks"
	"carebridge/internal/donation/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
)

type testEnv struct {
	svc      *Service
	store    *store.MemoryStore
	accounts *mocks.MockAccountDirectory
	children *mocks.MockChildRegistry
	medical  *mocks.MockMedicalCases
	events   *notify.MemoryPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountDirectory(ctrl)
	children := mocks.NewMockChildRegistry(ctrl)
	medical := mocks.NewMockMedicalCases(ctrl)
	ledger := store.NewMemoryStore()
	events := notify.NewMemoryPublisher()
	svc := New(ledger, accounts, children, slog.New(slog.DiscardHandler),
		WithEvents(events), WithMedicalCases(medical))
	return &testEnv{svc: svc, store: ledger, accounts: accounts, children: children, medical: medical, events: events}
}

func TestCreateDonation_GeneralFund(t *testing.T) {
	env := newTestEnv(t)
	donor := domain.AccountID(uuid.New())
	env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)

	donation, err := env.svc.CreateDonation(context.Background(), CreateInput{
		DonorID: donor,
		Amount:  500,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FundTypeGeneral, donation.FundType)
	assert.Nil(t, donation.Target)
	assert.Nil(t, donation.Orphanage)
	assert.Equal(t, "Donation for General Support", donation.Message)

	published := env.events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, notify.KindNewDonation, published[0].Kind)
}

func TestCreateDonation_ChildOverridesEverything(t *testing.T) {
	env := newTestEnv(t)
	donor := domain.AccountID(uuid.New())
	child := domain.ChildID(uuid.New())
	registered := domain.AccountID(uuid.New())
	callerChoice := domain.AccountID(uuid.New())

	env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	env.children.EXPECT().SummaryOf(gomock.Any(), child).Return(childadapters.ChildSummary{
		ID:        child,
		Name:      "Asha",
		Orphanage: &registered,
	}, nil)

	donation, err := env.svc.CreateDonation(context.Background(), CreateInput{
		DonorID:     donor,
		Amount:      1000,
		ChildID:     &child,
		OrphanageID: &callerChoice,
		FundType:    domain.FundTypeBulk,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FundTypeIndividualSponsorship, donation.FundType)
	require.NotNil(t, donation.Target)
	assert.Equal(t, domain.TargetKindChild, donation.Target.Kind)
	assert.Equal(t, child.String(), donation.Target.Ref)
	require.NotNil(t, donation.Orphanage)
	assert.Equal(t, registered, *donation.Orphanage, "the registered orphanage wins over the caller's")
	assert.Equal(t, "Donation for Child", donation.Message)
}

func TestCreateDonation_UnresolvableChildFallsBack(t *testing.T) {
	env := newTestEnv(t)
	donor := domain.AccountID(uuid.New())
	child := domain.ChildID(uuid.New())

	env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	env.children.EXPECT().SummaryOf(gomock.Any(), child).Return(childadapters.ChildSummary{}, sentinel.ErrNotFound)

	donation, err := env.svc.CreateDonation(context.Background(), CreateInput{
		DonorID: donor,
		Amount:  250,
		ChildID: &child,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FundTypeGeneral, donation.FundType)
	assert.Nil(t, donation.Target)
}

func TestCreateDonation_MedicalEarmark(t *testing.T) {
	env := newTestEnv(t)
	donor := domain.AccountID(uuid.New())
	caseID := domain.MedicalCaseID(uuid.New())

	env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	env.medical.EXPECT().RecordContribution(gomock.Any(), caseID, 300.0).Return(nil)

	donation, err := env.svc.CreateDonation(context.Background(), CreateInput{
		DonorID:       donor,
		Amount:        300,
		MedicalCaseID: &caseID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FundTypeMedical, donation.FundType)
	require.NotNil(t, donation.Target)
	assert.Equal(t, domain.TargetKindMedicalCase, donation.Target.Kind)
}

// A failed ledger write must not leave the medical case holding money no
// donation record backs: the recorded contribution gets reversed.
func TestCreateDonation_MedicalEarmarkReversedOnLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountDirectory(ctrl)
	children := mocks.NewMockChildRegistry(ctrl)
	medical := mocks.NewMockMedicalCases(ctrl)
	events := notify.NewMemoryPublisher()
	svc := New(failingLedger{}, accounts, children, slog.New(slog.DiscardHandler),
		WithEvents(events), WithMedicalCases(medical))

	donor := domain.AccountID(uuid.New())
	caseID := domain.MedicalCaseID(uuid.New())

	accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	gomock.InOrder(
		medical.EXPECT().RecordContribution(gomock.Any(), caseID, 500.0).Return(nil),
		medical.EXPECT().ReverseContribution(gomock.Any(), caseID, 500.0).Return(nil),
	)

	_, err := svc.CreateDonation(context.Background(), CreateInput{
		DonorID:       donor,
		Amount:        500,
		MedicalCaseID: &caseID,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.Empty(t, events.Events(), "no event without a ledger write")
}

// A failing reversal is logged, never masking the ledger error.
func TestCreateDonation_ReversalFailureStillSurfacesLedgerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountDirectory(ctrl)
	children := mocks.NewMockChildRegistry(ctrl)
	medical := mocks.NewMockMedicalCases(ctrl)
	svc := New(failingLedger{}, accounts, children, slog.New(slog.DiscardHandler),
		WithMedicalCases(medical))

	donor := domain.AccountID(uuid.New())
	caseID := domain.MedicalCaseID(uuid.New())

	accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	medical.EXPECT().RecordContribution(gomock.Any(), caseID, 50.0).Return(nil)
	medical.EXPECT().ReverseContribution(gomock.Any(), caseID, 50.0).Return(assert.AnError)

	_, err := svc.CreateDonation(context.Background(), CreateInput{
		DonorID:       donor,
		Amount:        50,
		MedicalCaseID: &caseID,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

// failingLedger rejects every write.
type failingLedger struct{}

func (failingLedger) Create(context.Context, *models.Donation) error { return assert.AnError }

func (failingLedger) FindByID(context.Context, domain.DonationID) (*models.Donation, error) {
	return nil, sentinel.ErrNotFound
}

func (failingLedger) ListByDonor(context.Context, domain.AccountID) ([]*models.Donation, error) {
	return nil, nil
}

func (failingLedger) List(context.Context) ([]*models.Donation, error) { return nil, nil }

func TestCreateDonation_Rejections(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		env := newTestEnv(t)
		donor := domain.AccountID(uuid.New())
		env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)

		_, err := env.svc.CreateDonation(context.Background(), CreateInput{DonorID: donor, Amount: 0})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Empty(t, env.events.Events(), "no event without a ledger write")
	})

	t.Run("unknown donor", func(t *testing.T) {
		env := newTestEnv(t)
		donor := domain.AccountID(uuid.New())
		env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.Role(""), sentinel.ErrNotFound)

		_, err := env.svc.CreateDonation(context.Background(), CreateInput{DonorID: donor, Amount: 100})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("non-donor role", func(t *testing.T) {
		env := newTestEnv(t)
		donor := domain.AccountID(uuid.New())
		env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleOrphanage, nil)

		_, err := env.svc.CreateDonation(context.Background(), CreateInput{DonorID: donor, Amount: 100})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestCreateDonation_FanoutFailureDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountDirectory(ctrl)
	children := mocks.NewMockChildRegistry(ctrl)
	donor := domain.AccountID(uuid.New())
	accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)

	failing := notify.NewFanout(slog.New(slog.DiscardHandler), failingPublisher{})
	svc := New(store.NewMemoryStore(), accounts, children, slog.New(slog.DiscardHandler), WithEvents(failing))

	donation, err := svc.CreateDonation(context.Background(), CreateInput{DonorID: donor, Amount: 100})
	require.NoError(t, err)
	assert.NotNil(t, donation)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, notify.Event) error {
	return assert.AnError
}

func TestListDonationsForDonor_JoinsOrphanageDisplay(t *testing.T) {
	env := newTestEnv(t)
	donor := domain.AccountID(uuid.New())
	child := domain.ChildID(uuid.New())
	orphanage := domain.AccountID(uuid.New())

	env.accounts.EXPECT().RoleOf(gomock.Any(), donor).Return(domain.RoleDonor, nil)
	env.children.EXPECT().SummaryOf(gomock.Any(), child).Return(childadapters.ChildSummary{
		ID:        child,
		Orphanage: &orphanage,
	}, nil)
	env.accounts.EXPECT().DisplayOf(gomock.Any(), orphanage).Return(authmodels.DisplayFields{
		Name:  "Sunrise Home",
		Email: "contact@sunrise.example",
	}, nil)

	_, err := env.svc.CreateDonation(context.Background(), CreateInput{
		DonorID: donor,
		Amount:  750,
		ChildID: &child,
	})
	require.NoError(t, err)

	views, err := env.svc.ListDonationsForDonor(context.Background(), donor)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Sunrise Home", views[0].OrphanageName)
	assert.Equal(t, "contact@sunrise.example", views[0].OrphanageEmail)
}

func TestLedgerIsAppendOnly(t *testing.T) {
	// The store interface itself is the guarantee: it compiles with no update
	// or delete. This test pins the insertion-order read path.
	ledger := store.NewMemoryStore()
	ctx := context.Background()

	first := domain.DonationID(uuid.New())
	second := domain.DonationID(uuid.New())
	donor := domain.AccountID(uuid.New())
	for _, id := range []domain.DonationID{first, second} {
		require.NoError(t, ledger.Create(ctx, mustDonation(t, id, donor)))
	}

	all, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID)
	assert.Equal(t, second, all[1].ID)

	require.ErrorIs(t, ledger.Create(ctx, mustDonation(t, first, donor)), sentinel.ErrConflict)
}

func mustDonation(t *testing.T, id domain.DonationID, donor domain.AccountID) *models.Donation {
	t.Helper()
	donation, err := models.NewDonation(id, donor, 100, domain.FundTypeGeneral, "test", time.Now())
	require.NoError(t, err)
	return donation
}
