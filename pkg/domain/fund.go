package domain

import dErrors "carebridge/pkg/domain-errors"

// FundType classifies how a donation's proceeds are earmarked.
type FundType string

const (
	FundTypeBulk                  FundType = "bulk"
	FundTypeAccessory             FundType = "accessory"
	FundTypeIndividualSponsorship FundType = "individual_sponsorship"
	FundTypeMedical               FundType = "medical"
	FundTypeGeneral               FundType = "general"
)

var validFundTypes = map[FundType]bool{
	FundTypeBulk:                  true,
	FundTypeAccessory:             true,
	FundTypeIndividualSponsorship: true,
	FundTypeMedical:               true,
	FundTypeGeneral:               true,
}

// ParseFundType constructs a FundType from external input. The empty string is
// allowed and normalized to the general fund — callers that omit a
// classification always land in the general pool.
func ParseFundType(s string) (FundType, error) {
	if s == "" {
		return FundTypeGeneral, nil
	}
	f := FundType(s)
	if !validFundTypes[f] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid fund type")
	}
	return f, nil
}

func (f FundType) IsValid() bool { return validFundTypes[f] }

func (f FundType) String() string { return string(f) }

// TargetKind tags the polymorphic donation target. A donation earmarked for a
// specific beneficiary carries exactly one kind plus the matching reference;
// the pair travels together so a "valid reference, wrong kind" state cannot be
// represented.
type TargetKind string

const (
	TargetKindUser        TargetKind = "user"
	TargetKindChild       TargetKind = "child"
	TargetKindMedicalCase TargetKind = "medical_case"
)

var validTargetKinds = map[TargetKind]bool{
	TargetKindUser:        true,
	TargetKindChild:       true,
	TargetKindMedicalCase: true,
}

func ParseTargetKind(s string) (TargetKind, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "target kind cannot be empty")
	}
	k := TargetKind(s)
	if !validTargetKinds[k] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid target kind")
	}
	return k, nil
}

func (k TargetKind) IsValid() bool { return validTargetKinds[k] }

func (k TargetKind) String() string { return string(k) }
