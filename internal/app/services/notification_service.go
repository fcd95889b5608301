package services

import (
	"context"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/repositories"
	"github.com/rs/zerolog"
)

// NotificationService defines the interface for the pull-only notification feed
type NotificationService interface {
	Emit(ctx context.Context, userID int64, message string) (int64, error)
	ListFor(ctx context.Context, userID int64) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAllRead(ctx context.Context, userID int64) (int, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Emit appends a new unread notification for the user
func (s *notificationServiceImpl) Emit(ctx context.Context, userID int64, message string) (int64, error) {
	id, err := s.notificationRepo.Create(ctx, userID, message)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to emit notification")
		return 0, err
	}

	s.logger.Debug().Int64("notificationId", id).Int64("userId", userID).Msg("Notification emitted")
	return id, nil
}

// ListFor retrieves the user's notifications, newest first
func (s *notificationServiceImpl) ListFor(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return responses, nil
}

// UnreadCount retrieves the number of unread notifications for the user
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkAllRead flips all unread notifications for the user to read and
// returns how many were affected. Zero is not an error.
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	affected, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
