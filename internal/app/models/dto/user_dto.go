package dto

import "time"

// UserBasicResponse carries the minimal public view of a user
type UserBasicResponse struct {
	ID              int64   `json:"id" example:"1"`
	FirstName       string  `json:"firstName" example:"John"`
	LastName        string  `json:"lastName" example:"Doe"`
	Email           string  `json:"email" example:"user@example.com"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// SkillResponse represents one entry of a user's skill list
type SkillResponse struct {
	Category    string `json:"category" example:"Backend"`
	Name        string `json:"name" example:"Go"`
	Description string `json:"description" example:"3 years building services"`
}

// UserResponse carries the full profile view of a user
type UserResponse struct {
	ID              int64           `json:"id" example:"1"`
	Email           string          `json:"email" example:"user@example.com"`
	FirstName       string          `json:"firstName" example:"John"`
	LastName        string          `json:"lastName" example:"Doe"`
	Address         *string         `json:"address,omitempty"`
	GitHubUsername  *string         `json:"githubUsername,omitempty"`
	DateOfBirth     *time.Time      `json:"dateOfBirth,omitempty"`
	Languages       *string         `json:"languages,omitempty"`
	Education       *string         `json:"education,omitempty"`
	Experience      *string         `json:"experience,omitempty"`
	ProfilePhotoURL *string         `json:"profilePhotoUrl,omitempty"`
	Skills          []SkillResponse `json:"skills"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// UpdateProfileRequest represents the payload for a profile update
type UpdateProfileRequest struct {
	FirstName      string     `json:"firstName" binding:"required,min=2,max=100"`
	LastName       string     `json:"lastName" binding:"required,min=2,max=100"`
	Address        *string    `json:"address,omitempty" binding:"omitempty,max=100"`
	GitHubUsername *string    `json:"githubUsername,omitempty" binding:"omitempty,max=100"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Languages      *string    `json:"languages,omitempty" binding:"omitempty,max=200"`
	Education      *string    `json:"education,omitempty" binding:"omitempty,max=200"`
	Experience     *string    `json:"experience,omitempty" binding:"omitempty,max=200"`
}

// SkillRequest represents one skill entry in an update
type SkillRequest struct {
	Category    string `json:"category" binding:"required,max=100" example:"Backend"`
	Name        string `json:"name" binding:"required,max=100" example:"Go"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateSkillsRequest replaces the user's full ordered skill list
type UpdateSkillsRequest struct {
	Skills []SkillRequest `json:"skills" binding:"required,dive"`
}

// ProfilePhotoResponse is returned after a profile photo upload
type ProfilePhotoResponse struct {
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}
