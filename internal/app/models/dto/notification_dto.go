package dto

import "time"

// NotificationResponse carries one feed entry
type NotificationResponse struct {
	ID        int64     `json:"id" example:"1"`
	Message   string    `json:"message" example:"Your request to join 'Realtime leaderboard' has been approved"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnreadCountResponse carries the number of unread notifications
type UnreadCountResponse struct {
	Count int `json:"count" example:"3"`
}

// MarkReadResponse carries the number of notifications flipped to read
type MarkReadResponse struct {
	Affected int `json:"affected" example:"3"`
}
