package domain

import "time"

// User is the profile record owned by the users service. The gateway only
// ever sees it inside success envelopes; IDHash is the public identifier
// exposed to clients, ID stays internal to the backend services.
type User struct {
	ID          string     `json:"id"`
	IDHash      string     `json:"idHash"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth string     `json:"dateOfBirth"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// UserDisplay is the projection the users service returns for display
// joins (tweet author identity).
type UserDisplay struct {
	IDHash   string `json:"idHash"`
	Username string `json:"username"`
}

// Credential is the auth service's projection of an account: one per user,
// keyed by the user's internal id.
type Credential struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
