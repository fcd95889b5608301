package services

import (
	"context"
	"fmt"
	"time"

	"github.com/deniz/teamup/internal/app/auth"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/repositories"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ParticipantService defines the interface for the join-request lifecycle:
// PENDING on apply, then either APPROVED or REJECTED by the post author.
// Approved and rejected are terminal.
type ParticipantService interface {
	Apply(ctx context.Context, postID, userID int64) (*dto.ParticipantResponse, error)
	Approve(ctx context.Context, participationID, actingUserID int64) error
	Reject(ctx context.Context, participationID, actingUserID int64) error
	ListByPost(ctx context.Context, postID int64) ([]dto.ParticipantResponse, error)
}

// participantServiceImpl implements ParticipantService
type participantServiceImpl struct {
	participantRepo     repositories.ParticipantRepository
	postRepo            repositories.PostRepository
	notificationService NotificationService
	authzService        *auth.AuthorizationService
	logger              zerolog.Logger
	now                 func() time.Time
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	postRepo repositories.PostRepository,
	notificationService NotificationService,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) ParticipantService {
	return &participantServiceImpl{
		participantRepo:     participantRepo,
		postRepo:            postRepo,
		notificationService: notificationService,
		authzService:        authzService,
		logger:              logger,
		now:                 time.Now,
	}
}

// Apply creates a PENDING join request for the user on the post.
// A user who already applied gets ErrAlreadyApplied no matter what state
// the post is in now, so the duplicate check runs before the closed and
// capacity gates. Capacity counts approved participants only; a pending
// application does not hold a slot. The checks are re-run atomically in
// the repository, so concurrent applications cannot slip past the
// pre-reads here.
func (s *participantServiceImpl) Apply(ctx context.Context, postID, userID int64) (*dto.ParticipantResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID == userID {
		return nil, apperrors.ErrOwnPost
	}

	alreadyApplied, err := s.participantRepo.ExistsByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if alreadyApplied {
		return nil, apperrors.ErrAlreadyApplied
	}

	if !post.AcceptsApplications(s.now()) {
		return nil, apperrors.ErrPostClosed
	}

	participant, err := s.participantRepo.CreatePending(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("postId", postID).
		Int64("userId", userID).
		Int64("participantId", participant.ID).
		Msg("Join request created")

	response := toParticipantResponse(participant)
	return &response, nil
}

// Approve marks a join request approved and notifies the applicant.
// Only the post author may approve. Re-approving is a no-op success and
// emits no second notification. A rejected participation cannot be
// approved afterwards.
func (s *participantServiceImpl) Approve(ctx context.Context, participationID, actingUserID int64) error {
	participant, err := s.participantRepo.GetByID(ctx, participationID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, participant.PostID)
	if err != nil {
		return err
	}

	if err := s.authzService.CanModerateParticipant(post, actingUserID); err != nil {
		return err
	}

	if participant.IsApproved {
		return nil
	}
	if participant.IsRejected {
		return apperrors.NewConflictError("participation was already rejected")
	}

	newlyApproved, err := s.participantRepo.Approve(ctx, participationID)
	if err != nil {
		return err
	}

	if !newlyApproved {
		// Lost a race against a concurrent approval; state is already
		// what the caller wanted and the winner emitted the notification.
		return nil
	}

	// Notification follows the committed state change. A failed emission
	// leaves the approval intact; the feed is eventually consistent.
	message := fmt.Sprintf("Your request to join '%s' has been approved", post.Title)
	if _, err := s.notificationService.Emit(ctx, participant.UserID, message); err != nil {
		s.logger.Error().Err(err).
			Int64("participantId", participationID).
			Int64("userId", participant.UserID).
			Msg("Approval committed but notification emission failed")
	}

	s.logger.Info().
		Int64("participantId", participationID).
		Int64("postId", post.ID).
		Msg("Participant approved")

	return nil
}

// Reject marks a join request rejected. Only the post author may reject.
// Re-rejecting is a no-op success; an approved participation cannot be
// rejected afterwards. No notification is emitted.
func (s *participantServiceImpl) Reject(ctx context.Context, participationID, actingUserID int64) error {
	participant, err := s.participantRepo.GetByID(ctx, participationID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, participant.PostID)
	if err != nil {
		return err
	}

	if err := s.authzService.CanModerateParticipant(post, actingUserID); err != nil {
		return err
	}

	if participant.IsRejected {
		return nil
	}
	if participant.IsApproved {
		return apperrors.NewConflictError("participation was already approved")
	}

	if _, err := s.participantRepo.Reject(ctx, participationID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("participantId", participationID).
		Int64("postId", post.ID).
		Msg("Participant rejected")

	return nil
}

// ListByPost retrieves all join requests for a post
func (s *participantServiceImpl) ListByPost(ctx context.Context, postID int64) ([]dto.ParticipantResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		responses = append(responses, toParticipantResponse(p))
	}

	return responses, nil
}

func toParticipantResponse(p *models.PostParticipant) dto.ParticipantResponse {
	response := dto.ParticipantResponse{
		ID:       p.ID,
		PostID:   p.PostID,
		UserID:   p.UserID,
		Status:   string(p.Status()),
		JoinedAt: p.JoinedAt,
	}

	if p.User != nil {
		response.User = &dto.UserBasicResponse{
			ID:              p.User.ID,
			FirstName:       p.User.FirstName,
			LastName:        p.User.LastName,
			Email:           p.User.Email,
			ProfilePhotoURL: p.User.ProfilePhotoURL,
		}
	}

	return response
}
