package repositories

import (
	"context"

	"github.com/deniz/teamup/internal/app/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users and their skills
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error
	GetSkills(ctx context.Context, userID int64) ([]*models.Skill, error)
	ReplaceSkills(ctx context.Context, userID int64, skills []*models.Skill) error
}

// PostRepository handles database operations for posts
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error)
	ListAll(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateImageURL(ctx context.Context, postID int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}

// ParticipantRepository handles database operations for join requests
type ParticipantRepository interface {
	GetByID(ctx context.Context, id int64) (*models.PostParticipant, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PostParticipant, error)
	ListApprovedPostsByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	CountApproved(ctx context.Context, postID int64) (int, error)
	CountApprovedByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int, error)
	ExistsByPostAndUser(ctx context.Context, postID, userID int64) (bool, error)
	CreatePending(ctx context.Context, postID, userID int64) (*models.PostParticipant, error)
	Approve(ctx context.Context, id int64) (bool, error)
	Reject(ctx context.Context, id int64) (bool, error)
}

// NotificationRepository handles database operations for the notification feed
type NotificationRepository interface {
	Create(ctx context.Context, userID int64, message string) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// Repositories bundles all repository implementations for dependency wiring
type Repositories struct {
	Users         UserRepository
	Posts         PostRepository
	Participants  ParticipantRepository
	Notifications NotificationRepository
	RefreshTokens RefreshTokenRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Posts:         NewPostRepository(db),
		Participants:  NewParticipantRepository(db),
		Notifications: NewNotificationRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
	}
}
