package models

import "time"

// ParticipantStatus describes where a join request sits in its lifecycle
type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantApproved ParticipantStatus = "APPROVED"
	ParticipantRejected ParticipantStatus = "REJECTED"
)

// PostParticipant represents a user's application to join a post, based on
// the 'post_participants' table. Exactly one row exists per (post, user)
// pair, enforced by a unique constraint.
type PostParticipant struct {
	ID         int64     `json:"id" db:"id"`
	PostID     int64     `json:"postId" db:"post_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	IsApproved bool      `json:"isApproved" db:"is_approved"`
	IsRejected bool      `json:"isRejected" db:"is_rejected"`
	JoinedAt   time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
	Post *Post `json:"post,omitempty"`
}

// Status derives the lifecycle state from the approval flags.
// Approved wins if both flags are somehow set; the service layer never
// allows that combination.
func (p *PostParticipant) Status() ParticipantStatus {
	switch {
	case p.IsApproved:
		return ParticipantApproved
	case p.IsRejected:
		return ParticipantRejected
	default:
		return ParticipantPending
	}
}

// IsTerminal reports whether the participation can no longer change state
func (p *PostParticipant) IsTerminal() bool {
	return p.IsApproved || p.IsRejected
}
