package aiengine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	childmodels "carebridge/internal/child/models"
	childstore "carebridge/internal/child/store"
	schemestore "carebridge/internal/scheme/store"
	"carebridge/internal/scheme/matching"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

func intPtr(v int) *int { return &v }

func newBaseline(t *testing.T) (*Baseline, *childstore.MemoryStore) {
	t.Helper()
	children := childstore.NewMemoryStore()
	engine := matching.NewEngine(schemestore.NewSchemeMemoryStore(), children)
	return NewBaseline(children, engine), children
}

func addChild(t *testing.T, children *childstore.MemoryStore, mutate func(*childmodels.Child)) *childmodels.Child {
	t.Helper()
	child, err := childmodels.NewChild(domain.ChildID(uuid.New()), "Asha", intPtr(12), time.Now())
	require.NoError(t, err)
	if mutate != nil {
		mutate(child)
	}
	require.NoError(t, children.Create(context.Background(), child))
	return child
}

func TestPredictRisk(t *testing.T) {
	baseline, children := newBaseline(t)
	ctx := context.Background()

	t.Run("healthy profile scores low", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Academic.Performance = 85
		})
		assessment, err := baseline.PredictRisk(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "low", assessment.Level)
		assert.Empty(t, assessment.Factors)
	})

	t.Run("poor attendance and grades score high", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Attendance = 45
			c.Academic.Performance = 20
		})
		assessment, err := baseline.PredictRisk(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "high", assessment.Level)
		assert.Len(t, assessment.Factors, 2)
	})

	t.Run("high-severity notes raise the grade", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Academic.Performance = 85
			for i := 0; i < 3; i++ {
				require.NoError(t, c.AppendNote("incident", domain.SeverityHigh, time.Now()))
			}
		})
		assessment, err := baseline.PredictRisk(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "medium", assessment.Level)
	})

	t.Run("unknown child is not found", func(t *testing.T) {
		_, err := baseline.PredictRisk(ctx, domain.ChildID(uuid.New()))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestMatchOpportunity(t *testing.T) {
	baseline, children := newBaseline(t)
	ctx := context.Background()

	t.Run("ready with a planned pathway", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Transition = childmodels.TransitionPlan{Readiness: 80, Pathways: []string{"vocational training", "higher education"}}
		})
		match, err := baseline.MatchOpportunity(ctx, child.ID)
		require.NoError(t, err)
		assert.True(t, match.Ready)
		assert.Equal(t, "vocational training", match.Pathway)
	})

	t.Run("below threshold is not ready", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Transition = childmodels.TransitionPlan{Readiness: 40, Pathways: []string{"vocational training"}}
		})
		match, err := baseline.MatchOpportunity(ctx, child.ID)
		require.NoError(t, err)
		assert.False(t, match.Ready)
		assert.Empty(t, match.Pathway)
	})

	t.Run("no pathways planned", func(t *testing.T) {
		child := addChild(t, children, func(c *childmodels.Child) {
			c.Transition = childmodels.TransitionPlan{Readiness: 90}
		})
		match, err := baseline.MatchOpportunity(ctx, child.ID)
		require.NoError(t, err)
		assert.False(t, match.Ready)
		assert.Equal(t, "no transition pathways planned yet", match.Explanation)
	})
}

func TestExtractDocumentUnsupported(t *testing.T) {
	baseline, _ := newBaseline(t)
	_, err := baseline.ExtractDocument(context.Background(), "aadhaar", []byte("scan"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
