// Package domain holds the typed identifiers and enumerations shared across
// the platform. Construct values via the ParseX functions at trust boundaries;
// direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "carebridge/pkg/domain-errors"
)

// Typed IDs prevent cross-aggregate mixups at compile time. Each wraps a
// uuid.UUID; the zero value is the nil UUID and is never a valid reference.
type (
	AccountID     uuid.UUID
	ChildID       uuid.UUID
	SchemeID      uuid.UUID
	ApplicationID uuid.UUID
	DonationID    uuid.UUID
	MedicalCaseID uuid.UUID
	AchievementID uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID("account", s)
	return AccountID(u), err
}

func ParseChildID(s string) (ChildID, error) {
	u, err := parseUUID("child", s)
	return ChildID(u), err
}

func ParseSchemeID(s string) (SchemeID, error) {
	u, err := parseUUID("scheme", s)
	return SchemeID(u), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID("application", s)
	return ApplicationID(u), err
}

func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID("donation", s)
	return DonationID(u), err
}

func ParseMedicalCaseID(s string) (MedicalCaseID, error) {
	u, err := parseUUID("medical case", s)
	return MedicalCaseID(u), err
}

func ParseAchievementID(s string) (AchievementID, error) {
	u, err := parseUUID("achievement", s)
	return AchievementID(u), err
}

func (id AccountID) String() string     { return uuid.UUID(id).String() }
func (id ChildID) String() string       { return uuid.UUID(id).String() }
func (id SchemeID) String() string      { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id DonationID) String() string    { return uuid.UUID(id).String() }
func (id MedicalCaseID) String() string { return uuid.UUID(id).String() }
func (id AchievementID) String() string { return uuid.UUID(id).String() }

func (id AccountID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ChildID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id SchemeID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id MedicalCaseID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AchievementID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id AccountID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id ChildID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id SchemeID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id ApplicationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id DonationID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id MedicalCaseID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id AchievementID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *AccountID) UnmarshalText(b []byte) error {
	parsed, err := ParseAccountID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ChildID) UnmarshalText(b []byte) error {
	parsed, err := ParseChildID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *SchemeID) UnmarshalText(b []byte) error {
	parsed, err := ParseSchemeID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ApplicationID) UnmarshalText(b []byte) error {
	parsed, err := ParseApplicationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DonationID) UnmarshalText(b []byte) error {
	parsed, err := ParseDonationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *MedicalCaseID) UnmarshalText(b []byte) error {
	parsed, err := ParseMedicalCaseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AchievementID) UnmarshalText(b []byte) error {
	parsed, err := ParseAchievementID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
