package services

import (
	"github.com/deniz/teamup/internal/app/auth"
	"github.com/deniz/teamup/internal/app/repositories"
	jwtauth "github.com/deniz/teamup/internal/pkg/auth"
	"github.com/deniz/teamup/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// Services bundles all service implementations for dependency wiring
type Services struct {
	Auth          AuthService
	Users         UserService
	Posts         PostService
	Participants  ParticipantService
	Notifications NotificationService
}

// NewServices creates all services over the shared repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *jwtauth.JWTService,
	fileStorage *filestorage.LocalStorage,
	logger zerolog.Logger,
) *Services {
	authzService := auth.NewAuthorizationService()
	notificationService := NewNotificationService(repos.Notifications, logger)

	return &Services{
		Auth:          NewAuthService(repos.Users, repos.RefreshTokens, jwtService, logger),
		Users:         NewUserService(repos.Users, fileStorage, logger),
		Posts:         NewPostService(repos.Posts, repos.Participants, repos.Users, fileStorage, authzService, logger),
		Participants:  NewParticipantService(repos.Participants, repos.Posts, notificationService, authzService, logger),
		Notifications: notificationService,
	}
}
