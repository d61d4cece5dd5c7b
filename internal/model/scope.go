package model

// Role is the kind of party acting on the marketplace.
type Role string

const (
	RoleCouple   Role = "couple"
	RoleSupplier Role = "supplier"
)

// Scope identifies the authenticated caller of an operation.
type Scope struct {
	UserID string
	Role   Role
}

func (s Scope) IsCouple() bool   { return s.Role == RoleCouple && s.UserID != "" }
func (s Scope) IsSupplier() bool { return s.Role == RoleSupplier && s.UserID != "" }

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleCouple || r == RoleSupplier
}
