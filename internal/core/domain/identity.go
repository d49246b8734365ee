package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IdentityClaim is the validated, request-scoped representation of the
// caller. It is built fresh per request from the auth service's
// validate-token reply and is never persisted by the gateway.
type IdentityClaim struct {
	SubjectID string `json:"subjectId"`
	IDHash    string `json:"idHash"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Valid reports whether the claim carries a usable identity. A claim
// without a subject is treated as absent, never as an anonymous allow.
func (c IdentityClaim) Valid() bool {
	return c.SubjectID != "" && c.Role != ""
}

// IsAdmin reports whether the caller holds the admin role.
func (c IdentityClaim) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanActOn decides whether the caller may mutate a resource addressed by
// its owner's public id hash: the owner themselves, or any admin.
func (c IdentityClaim) CanActOn(ownerIDHash string) bool {
	return c.IsAdmin() || (c.IDHash != "" && c.IDHash == ownerIDHash)
}

// CanActOnSubject is CanActOn for resources keyed by the owner's internal
// id (tweets store authorId, not idHash).
func (c IdentityClaim) CanActOnSubject(ownerID string) bool {
	return c.IsAdmin() || (c.SubjectID != "" && c.SubjectID == ownerID)
}
