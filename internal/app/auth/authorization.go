package auth

import (
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
)

// AuthorizationService centralizes ownership checks. Every post mutation
// and every participant decision is author-gated; applicants can never
// moderate their own application.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CanEditPost returns nil when the user is the post's author
func (s *AuthorizationService) CanEditPost(post *models.Post, userID int64) error {
	if post == nil {
		return apperrors.ErrPostNotFound
	}
	if !post.CanEdit(userID) {
		return apperrors.NewForbiddenError("only the post author can modify this post")
	}
	return nil
}

// CanModerateParticipant returns nil when the user authors the post the
// participation belongs to
func (s *AuthorizationService) CanModerateParticipant(post *models.Post, userID int64) error {
	if post == nil {
		return apperrors.ErrPostNotFound
	}
	if post.AuthorID != userID {
		return apperrors.NewForbiddenError("only the post author can decide on participants")
	}
	return nil
}
