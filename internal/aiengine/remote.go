package aiengine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/circuit"
)

// Remote calls the external engine over HTTP. Responses pass through as-is:
// the engine owns its result shapes and this client never substitutes
// baseline answers for a failed call.
type Remote struct {
	baseURL string
	client  *http.Client
	breaker *circuit.Breaker
}

func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		breaker: circuit.New(3, 1),
	}
}

func (r *Remote) PredictRisk(ctx context.Context, childID domain.ChildID) (*RiskAssessment, error) {
	var out RiskAssessment
	if err := r.get(ctx, "/predict-risk/"+childID.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Remote) MatchSchemes(ctx context.Context, childID domain.ChildID) ([]SchemeMatch, error) {
	var out []SchemeMatch
	if err := r.get(ctx, "/match-schemes/"+childID.String(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) MatchOpportunity(ctx context.Context, childID domain.ChildID) (*OpportunityMatch, error) {
	var out OpportunityMatch
	if err := r.get(ctx, "/match-opportunity/"+childID.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Remote) ExtractDocument(ctx context.Context, documentType string, content []byte) (*DocumentExtraction, error) {
	payload := map[string]string{
		"document_type": documentType,
		"content":       base64.StdEncoding.EncodeToString(content),
	}
	var out DocumentExtraction
	if err := r.post(ctx, "/process-document", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Remote) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build engine request: %w", err)
	}
	return r.do(req, out)
}

func (r *Remote) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode engine request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, out)
}

func (r *Remote) do(req *http.Request, out any) error {
	if r.breaker.IsOpen() {
		return dErrors.New(dErrors.CodeUnavailable, "ai engine circuit open")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.breaker.RecordFailure()
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ai engine unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		r.breaker.RecordSuccess()
		return dErrors.New(dErrors.CodeNotFound, "ai engine has no record for this subject")
	case resp.StatusCode >= http.StatusInternalServerError:
		r.breaker.RecordFailure()
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("ai engine returned %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		r.breaker.RecordSuccess()
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("ai engine rejected the request: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		r.breaker.RecordFailure()
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed ai engine response")
	}
	r.breaker.RecordSuccess()
	return nil
}
