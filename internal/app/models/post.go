package models

import "time"

// Post capacity bounds
const (
	MinParticipants     = 1
	MaxParticipantLimit = 100
	DefaultParticipants = 10
)

// Post represents a team-formation listing created by a user
type Post struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title" example:"Realtime leaderboard"`
	Content           string     `json:"content" db:"content"`
	ImageURL          *string    `json:"imageUrl,omitempty" db:"image_url"`
	RequiredExpertise *string    `json:"requiredExpertise,omitempty" db:"required_expertise" example:"Go, PostgreSQL, React"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty" db:"expiration_date"`
	IsClosed          bool       `json:"isClosed" db:"is_closed"`
	MaxParticipants   int        `json:"maxParticipants" db:"max_participants" example:"10"`
	AuthorID          int64      `json:"authorId" db:"author_id"`
	Version           int        `json:"version" db:"version"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author       *User              `json:"author,omitempty"`
	Participants []*PostParticipant `json:"participants,omitempty"`
}

// CanEdit reports whether the given user may mutate this post
func (p *Post) CanEdit(userID int64) bool {
	return p.AuthorID == userID
}

// IsExpired reports whether the post's expiration date has passed
func (p *Post) IsExpired(now time.Time) bool {
	return p.ExpirationDate != nil && p.ExpirationDate.Before(now)
}

// AcceptsApplications reports whether the post can still receive join requests
func (p *Post) AcceptsApplications(now time.Time) bool {
	return !p.IsClosed && !p.IsExpired(now)
}
