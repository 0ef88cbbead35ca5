package matching

import (
	"context"
	"fmt"
	"strings"

	childmodels "carebridge/internal/child/models"
	"carebridge/internal/scheme/models"
)

// Score is one scorer verdict. A nil *Score from Score means the scheme is
// excluded for this child.
type Score struct {
	Confidence int
	Reasoning  string
}

// Scorer ranks one scheme for one child. The baseline RuleScorer is
// deterministic; the AI engine provides a remote implementation with the same
// contract.
type Scorer interface {
	Score(ctx context.Context, child *childmodels.Child, scheme *models.Scheme) (*Score, error)
}

// RuleScorer is the baseline scorer: full confidence inside the rule,
// excluded outside. It never fails.
type RuleScorer struct {
	Mode Mode
}

func (s RuleScorer) Score(_ context.Context, child *childmodels.Child, scheme *models.Scheme) (*Score, error) {
	if !satisfies(child, scheme.Rule, s.Mode) {
		return nil, nil
	}
	return &Score{Confidence: 100, Reasoning: reasonFor(child, scheme.Rule)}, nil
}

func reasonFor(child *childmodels.Child, rule models.EligibilityRule) string {
	var parts []string
	if child.Age != nil && (rule.MinAge != nil || rule.MaxAge != nil) {
		parts = append(parts, fmt.Sprintf("age %d is within the eligible range %s", *child.Age, ageRange(rule)))
	}
	if len(rule.RequiredDocuments) > 0 {
		parts = append(parts, "all required documents are verified")
	}
	if len(rule.TargetGroups) > 0 {
		parts = append(parts, "profile matches the scheme's target groups")
	}
	if len(parts) == 0 {
		return "scheme has no eligibility restrictions"
	}
	return strings.Join(parts, "; ")
}

func ageRange(rule models.EligibilityRule) string {
	switch {
	case rule.MinAge != nil && rule.MaxAge != nil:
		return fmt.Sprintf("%d-%d", *rule.MinAge, *rule.MaxAge)
	case rule.MinAge != nil:
		return fmt.Sprintf("%d and above", *rule.MinAge)
	default:
		return fmt.Sprintf("up to %d", *rule.MaxAge)
	}
}

// matchesTargetGroups reports whether the child's skills or transition
// pathways intersect the scheme's target groups. An empty target-group list
// imposes no constraint.
func matchesTargetGroups(child *childmodels.Child, groups []string) bool {
	if len(groups) == 0 {
		return true
	}
	attrs := make(map[string]struct{}, len(child.Skills)+len(child.Transition.Pathways))
	for _, s := range child.Skills {
		attrs[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, p := range child.Transition.Pathways {
		attrs[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	for _, g := range groups {
		if _, ok := attrs[strings.ToLower(strings.TrimSpace(g))]; ok {
			return true
		}
	}
	return false
}
