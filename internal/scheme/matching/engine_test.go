package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	childmodels "carebridge/internal/child/models"
	childstore "carebridge/internal/child/store"
	"carebridge/internal/scheme/models"
	"carebridge/internal/scheme/store"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

func intPtr(v int) *int { return &v }

func seedChild(t *testing.T, children *childstore.MemoryStore, name string, age *int, mutate func(*childmodels.Child)) *childmodels.Child {
	t.Helper()
	child, err := childmodels.NewChild(domain.ChildID(uuid.New()), name, age, time.Now())
	require.NoError(t, err)
	if mutate != nil {
		mutate(child)
	}
	require.NoError(t, children.Create(context.Background(), child))
	return child
}

func seedScheme(t *testing.T, schemes *store.SchemeMemoryStore, name string, rule models.EligibilityRule) *models.Scheme {
	t.Helper()
	scheme, err := models.NewScheme(domain.SchemeID(uuid.New()), name, rule, time.Now())
	require.NoError(t, err)
	require.NoError(t, schemes.Create(context.Background(), scheme))
	return scheme
}

func TestMatchChildrenForScheme_AgeBounds(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	scheme := seedScheme(t, schemes, "Child Education Grant", models.EligibilityRule{
		MinAge: intPtr(0),
		MaxAge: intPtr(18),
	})

	inside := seedChild(t, children, "Asha", intPtr(17), nil)
	atLower := seedChild(t, children, "Ravi", intPtr(0), nil)
	seedChild(t, children, "Meena", intPtr(19), nil)
	seedChild(t, children, "Unknown Age", nil, nil)

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)

	assert.Equal(t, scheme.Name, got.SchemeName)
	require.Len(t, got.Children, 2)
	assert.Equal(t, inside.ID, got.Children[0].ID)
	assert.Equal(t, atLower.ID, got.Children[1].ID)
}

func TestMatchChildrenForScheme_MissingAgeFailsBound(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	scheme := seedScheme(t, schemes, "Teen Vocational Support", models.EligibilityRule{MinAge: intPtr(13)})
	seedChild(t, children, "No Age", nil, nil)

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Children)
}

func TestMatchChildrenForScheme_UnboundedRuleMatchesAll(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	scheme := seedScheme(t, schemes, "Universal Nutrition", models.EligibilityRule{})
	seedChild(t, children, "Asha", intPtr(5), nil)
	seedChild(t, children, "No Age", nil, nil)

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)
	assert.Len(t, got.Children, 2)
}

func TestMatchChildrenForScheme_SchemeNotFound(t *testing.T) {
	engine := NewEngine(store.NewSchemeMemoryStore(), childstore.NewMemoryStore())

	_, err := engine.MatchChildrenForScheme(context.Background(), domain.SchemeID(uuid.New()))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestMatchChildrenForScheme_FullRuleRequiresVerifiedDocuments(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	scheme := seedScheme(t, schemes, "Identity-Gated Stipend", models.EligibilityRule{
		MinAge:            intPtr(0),
		MaxAge:            intPtr(18),
		RequiredDocuments: []domain.DocumentType{domain.DocumentTypeBirthCertificate},
	})

	verified := seedChild(t, children, "Verified", intPtr(10), func(c *childmodels.Child) {
		require.NoError(t, c.UpsertDocument(childmodels.Document{
			Type:   domain.DocumentTypeBirthCertificate,
			Status: domain.DocumentStatusVerified,
		}, time.Now()))
	})
	seedChild(t, children, "Pending", intPtr(10), func(c *childmodels.Child) {
		require.NoError(t, c.UpsertDocument(childmodels.Document{
			Type:   domain.DocumentTypeBirthCertificate,
			Status: domain.DocumentStatusPending,
		}, time.Now()))
	})
	seedChild(t, children, "Missing", intPtr(10), nil)

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Equal(t, verified.ID, got.Children[0].ID)
}

func TestMatchChildrenForScheme_FullRuleTargetGroups(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	scheme := seedScheme(t, schemes, "Sports Scholarship", models.EligibilityRule{
		TargetGroups: []string{"Sports"},
	})

	athlete := seedChild(t, children, "Athlete", intPtr(12), func(c *childmodels.Child) {
		c.Skills = []string{"sports", "music"}
	})
	seedChild(t, children, "Artist", intPtr(12), func(c *childmodels.Child) {
		c.Skills = []string{"painting"}
	})

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Equal(t, athlete.ID, got.Children[0].ID)
}

func TestMatchChildrenForScheme_AgeOnlyIgnoresDocumentsAndGroups(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children, WithMode(ModeAgeOnly))

	scheme := seedScheme(t, schemes, "Legacy Age-Band Grant", models.EligibilityRule{
		MinAge:            intPtr(5),
		MaxAge:            intPtr(15),
		RequiredDocuments: []domain.DocumentType{domain.DocumentTypeBirthCertificate},
		TargetGroups:      []string{"sports"},
	})

	seedChild(t, children, "In Band", intPtr(10), nil)
	seedChild(t, children, "Out of Band", intPtr(16), nil)

	got, err := engine.MatchChildrenForScheme(context.Background(), scheme.ID)
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "In Band", got.Children[0].Name)
}

func TestMatchSchemesForChild_BaselineScorer(t *testing.T) {
	schemes := store.NewSchemeMemoryStore()
	children := childstore.NewMemoryStore()
	engine := NewEngine(schemes, children)

	fits := seedScheme(t, schemes, "Primary Education Grant", models.EligibilityRule{
		MinAge: intPtr(5),
		MaxAge: intPtr(12),
	})
	seedScheme(t, schemes, "Teen Only", models.EligibilityRule{MinAge: intPtr(13)})
	open := seedScheme(t, schemes, "Universal Nutrition", models.EligibilityRule{})

	child := seedChild(t, children, "Asha", intPtr(9), nil)

	got, err := engine.MatchSchemesForChild(context.Background(), child.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, fits.ID, got[0].Scheme.ID)
	assert.Equal(t, 100, got[0].Confidence)
	assert.Contains(t, got[0].Reasoning, "age 9 is within the eligible range 5-12")

	assert.Equal(t, open.ID, got[1].Scheme.ID)
	assert.Equal(t, "scheme has no eligibility restrictions", got[1].Reasoning)
}

func TestMatchSchemesForChild_ChildNotFound(t *testing.T) {
	engine := NewEngine(store.NewSchemeMemoryStore(), childstore.NewMemoryStore())

	_, err := engine.MatchSchemesForChild(context.Background(), domain.ChildID(uuid.New()))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
