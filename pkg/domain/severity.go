package domain

import dErrors "carebridge/pkg/domain-errors"

// Severity grades a behavioral note on a child profile.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var validSeverities = map[Severity]bool{
	SeverityLow:    true,
	SeverityMedium: true,
	SeverityHigh:   true,
}

func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "severity cannot be empty")
	}
	v := Severity(s)
	if !validSeverities[v] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid severity")
	}
	return v, nil
}

func (s Severity) IsValid() bool { return validSeverities[s] }

func (s Severity) String() string { return string(s) }

// Urgency grades a medical case. Unlike Severity it has a critical tier
// because medical fundraising needs an above-high escalation level.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

var validUrgencies = map[Urgency]bool{
	UrgencyLow:      true,
	UrgencyMedium:   true,
	UrgencyHigh:     true,
	UrgencyCritical: true,
}

func ParseUrgency(s string) (Urgency, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "urgency cannot be empty")
	}
	u := Urgency(s)
	if !validUrgencies[u] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid urgency")
	}
	return u, nil
}

func (u Urgency) IsValid() bool { return validUrgencies[u] }

func (u Urgency) String() string { return string(u) }
