package dto

import "time"

// ParticipantResponse carries one join request and its lifecycle state
type ParticipantResponse struct {
	ID       int64              `json:"id" example:"1"`
	PostID   int64              `json:"postId" example:"1"`
	UserID   int64              `json:"userId" example:"2"`
	Status   string             `json:"status" example:"PENDING" enums:"PENDING,APPROVED,REJECTED"`
	JoinedAt time.Time          `json:"joinedAt"`
	User     *UserBasicResponse `json:"user,omitempty"`
}
