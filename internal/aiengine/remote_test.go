package aiengine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

func TestRemotePredictRisk(t *testing.T) {
	childID := domain.ChildID(uuid.New())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict-risk/"+childID.String(), r.URL.Path)
		json.NewEncoder(w).Encode(RiskAssessment{ChildID: childID, Score: 72, Level: "high"})
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	assessment, err := remote.PredictRisk(context.Background(), childID)
	require.NoError(t, err)
	assert.Equal(t, 72, assessment.Score)
	assert.Equal(t, "high", assessment.Level)
}

func TestRemoteUnreachableIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.PredictRisk(context.Background(), domain.ChildID(uuid.New()))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestRemoteServerErrorOpensCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	childID := domain.ChildID(uuid.New())
	for i := 0; i < 3; i++ {
		_, err := remote.PredictRisk(context.Background(), childID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	}

	srv.Close()
	_, err := remote.PredictRisk(context.Background(), childID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestRemoteNotFoundPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.MatchOpportunity(context.Background(), domain.ChildID(uuid.New()))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
