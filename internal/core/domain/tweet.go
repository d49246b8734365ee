package domain

import "time"

const (
	TweetTitleMaxLen   = 100
	TweetContentMaxLen = 800
)

// Tweet is the record owned by the tweets service. AuthorID references a
// user's internal id; the gateway resolves it to display identity at
// request time. It is a denormalized join, not an enforced foreign key.
type Tweet struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"authorId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
