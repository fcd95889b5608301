package dto

import "time"

// CreatePostRequest represents the payload for creating a post
type CreatePostRequest struct {
	Title             string     `json:"title" binding:"required,max=200" example:"Realtime leaderboard"`
	Content           string     `json:"content" binding:"required"`
	ImageURL          *string    `json:"imageUrl,omitempty" binding:"omitempty,url"`
	RequiredExpertise *string    `json:"requiredExpertise,omitempty" example:"Go, PostgreSQL, React"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	MaxParticipants   int        `json:"maxParticipants" example:"10"`
}

// UpdatePostRequest represents the payload for editing a post. Version must
// carry the value the caller last read; a stale version is rejected instead
// of silently overwriting a concurrent edit.
type UpdatePostRequest struct {
	Title             string     `json:"title" binding:"required,max=200"`
	Content           string     `json:"content" binding:"required"`
	ImageURL          *string    `json:"imageUrl,omitempty" binding:"omitempty,url"`
	RequiredExpertise *string    `json:"requiredExpertise,omitempty"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	MaxParticipants   int        `json:"maxParticipants"`
	IsClosed          bool       `json:"isClosed"`
	Version           int        `json:"version" binding:"required,min=1"`
}

// PostResponse carries the public view of a post
type PostResponse struct {
	ID                int64              `json:"id" example:"1"`
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	ImageURL          *string            `json:"imageUrl,omitempty"`
	RequiredExpertise *string            `json:"requiredExpertise,omitempty"`
	ExpirationDate    *time.Time         `json:"expirationDate,omitempty"`
	IsClosed          bool               `json:"isClosed"`
	MaxParticipants   int                `json:"maxParticipants"`
	ApprovedCount     int                `json:"approvedCount"`
	Version           int                `json:"version"`
	Author            *UserBasicResponse `json:"author,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// PostDetailResponse carries a post together with its participants
type PostDetailResponse struct {
	PostResponse
	Participants []ParticipantResponse `json:"participants"`
}

// PostListResponse carries a page of posts
type PostListResponse struct {
	Posts          []PostResponse `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// FeedResponse carries the home feed: every post plus the subset matching
// the viewer's skills. MatchedPosts is empty for anonymous viewers.
type FeedResponse struct {
	AllPosts     []PostResponse `json:"allPosts"`
	MatchedPosts []PostResponse `json:"matchedPosts"`
}

// DashboardResponse carries the caller's own posts and the posts they
// joined and were approved into
type DashboardResponse struct {
	MyPosts     []PostDetailResponse `json:"myPosts"`
	JoinedPosts []PostResponse       `json:"joinedPosts"`
}

// PostImageResponse is returned after a post image upload
type PostImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
