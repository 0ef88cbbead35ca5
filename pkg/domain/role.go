package domain

import dErrors "carebridge/pkg/domain-errors"

// Role identifies what an account is allowed to do on the platform.
// Invariant: the value must be one of the supported roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOrphanage  Role = "orphanage"
	RoleDonor      Role = "donor"
	RoleCareleaver Role = "careleaver"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleOrphanage:  true,
	RoleDonor:      true,
	RoleCareleaver: true,
}

// ParseRole constructs a Role from external input.
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

func (r Role) IsValid() bool { return validRoles[r] }

func (r Role) String() string { return string(r) }
