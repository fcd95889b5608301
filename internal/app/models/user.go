package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"user@example.com"`
	Password        string     `json:"-" db:"password"` // Hashed password, excluded from JSON
	FirstName       string     `json:"firstName" db:"first_name" example:"John"`
	LastName        string     `json:"lastName" db:"last_name" example:"Doe"`
	Address         *string    `json:"address,omitempty" db:"address"`
	GitHubUsername  *string    `json:"githubUsername,omitempty" db:"github_username"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Languages       *string    `json:"languages,omitempty" db:"languages"`
	Education       *string    `json:"education,omitempty" db:"education"`
	Experience      *string    `json:"experience,omitempty" db:"experience"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Skills []*Skill `json:"skills,omitempty"`
}

// Skill defines one entry of a user's ordered skill list, based on the
// 'user_skills' table. Skills used to live in a JSON blob on the user row;
// they are now typed records validated when the profile is saved.
type Skill struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	Position    int    `json:"position" db:"position"`
	Category    string `json:"category" db:"category" example:"Backend"`
	Name        string `json:"name" db:"name" example:"Go"`
	Description string `json:"description" db:"description"`
}

// SkillNames returns the user's skill names in declaration order
func (u *User) SkillNames() []string {
	names := make([]string, 0, len(u.Skills))
	for _, s := range u.Skills {
		names = append(names, s.Name)
	}
	return names
}
