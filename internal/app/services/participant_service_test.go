package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deniz/teamup/internal/app/auth"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

func newParticipantService(participantRepo *mockParticipantRepo, postRepo *mockPostRepo, notificationRepo *mockNotificationRepo, now time.Time) *participantServiceImpl {
	logger := zerolog.Nop()
	return &participantServiceImpl{
		participantRepo:     participantRepo,
		postRepo:            postRepo,
		notificationService: NewNotificationService(notificationRepo, logger),
		authzService:        auth.NewAuthorizationService(),
		logger:              logger,
		now:                 func() time.Time { return now },
	}
}

func openPost(id, authorID int64) *models.Post {
	return &models.Post{
		ID:              id,
		Title:           "Realtime leaderboard",
		AuthorID:        authorID,
		MaxParticipants: 10,
	}
}

func TestApplyCreatesPendingRequest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
		CreatePendingFunc: func(ctx context.Context, postID, userID int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: 7, PostID: postID, UserID: userID, JoinedAt: now}, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	resp, err := svc.Apply(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(models.ParticipantPending) {
		t.Errorf("expected status PENDING, got %s", resp.Status)
	}
	if resp.PostID != 5 || resp.UserID != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestApplyToOwnPostFails(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 2), nil
		},
	}

	svc := newParticipantService(&mockParticipantRepo{}, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrOwnPost) {
		t.Errorf("expected ErrOwnPost, got %v", err)
	}
}

func TestApplyToClosedPostFails(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			post := openPost(id, 1)
			post.IsClosed = true
			return post, nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrPostClosed) {
		t.Errorf("expected ErrPostClosed, got %v", err)
	}
}

func TestApplyToExpiredPostFails(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			post := openPost(id, 1)
			post.ExpirationDate = &expired
			return post, nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrPostClosed) {
		t.Errorf("expected ErrPostClosed, got %v", err)
	}
}

func TestApplyDuplicateReturnsAlreadyApplied(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplyDuplicateOnClosedPostReturnsAlreadyApplied(t *testing.T) {
	// Closing the post after someone applied must not change what their
	// second apply attempt reports.
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			post := openPost(id, 1)
			post.IsClosed = true
			return post, nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplyDuplicateRacePropagatesAlreadyApplied(t *testing.T) {
	// The pre-check can miss a participation inserted concurrently; the
	// repository's own duplicate detection must still win.
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		ExistsByPostAndUserFunc: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
		CreatePendingFunc: func(ctx context.Context, postID, userID int64) (*models.PostParticipant, error) {
			return nil, apperrors.ErrAlreadyApplied
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if _, err := svc.Apply(context.Background(), 5, 2); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApproveEmitsOneNotification(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
		ApproveFunc: func(ctx context.Context, id int64) (bool, error) {
			return true, nil
		},
	}

	var emitted []string
	var emittedTo []int64
	notificationRepo := &mockNotificationRepo{
		CreateFunc: func(ctx context.Context, userID int64, message string) (int64, error) {
			emitted = append(emitted, message)
			emittedTo = append(emittedTo, userID)
			return 1, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, notificationRepo, now)

	if err := svc.Approve(context.Background(), 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emitted) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(emitted))
	}
	if emittedTo[0] != 2 {
		t.Errorf("notification went to user %d, want 2", emittedTo[0])
	}
	want := "Your request to join 'Realtime leaderboard' has been approved"
	if emitted[0] != want {
		t.Errorf("notification message = %q, want %q", emitted[0], want)
	}
}

func TestApproveByNonAuthorForbidden(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if err := svc.Approve(context.Background(), 7, 99); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestApproveAlreadyApprovedIsIdempotent(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2, IsApproved: true}, nil
		},
	}

	emissions := 0
	notificationRepo := &mockNotificationRepo{
		CreateFunc: func(ctx context.Context, userID int64, message string) (int64, error) {
			emissions++
			return 1, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, notificationRepo, now)

	if err := svc.Approve(context.Background(), 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emissions != 0 {
		t.Errorf("re-approval emitted %d notifications, want 0", emissions)
	}
}

func TestApproveRejectedParticipationConflicts(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2, IsRejected: true}, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if err := svc.Approve(context.Background(), 7, 1); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestApproveLostRaceEmitsNoNotification(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
		ApproveFunc: func(ctx context.Context, id int64) (bool, error) {
			// Another request approved this participation first
			return false, nil
		},
	}

	emissions := 0
	notificationRepo := &mockNotificationRepo{
		CreateFunc: func(ctx context.Context, userID int64, message string) (int64, error) {
			emissions++
			return 1, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, notificationRepo, now)

	if err := svc.Approve(context.Background(), 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emissions != 0 {
		t.Errorf("lost race emitted %d notifications, want 0", emissions)
	}
}

func TestApproveAtCapacityPropagatesCapacityExceeded(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			post := openPost(id, 1)
			post.MaxParticipants = 1
			return post, nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
		ApproveFunc: func(ctx context.Context, id int64) (bool, error) {
			return false, apperrors.ErrCapacityExceeded
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if err := svc.Approve(context.Background(), 7, 1); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestApproveSurvivesNotificationFailure(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
		ApproveFunc: func(ctx context.Context, id int64) (bool, error) {
			return true, nil
		},
	}
	notificationRepo := &mockNotificationRepo{
		CreateFunc: func(ctx context.Context, userID int64, message string) (int64, error) {
			return 0, errors.New("notification store unavailable")
		},
	}

	svc := newParticipantService(participantRepo, postRepo, notificationRepo, now)

	if err := svc.Approve(context.Background(), 7, 1); err != nil {
		t.Errorf("approval should succeed despite notification failure, got %v", err)
	}
}

func TestRejectEmitsNoNotification(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2}, nil
		},
		RejectFunc: func(ctx context.Context, id int64) (bool, error) {
			return true, nil
		},
	}

	emissions := 0
	notificationRepo := &mockNotificationRepo{
		CreateFunc: func(ctx context.Context, userID int64, message string) (int64, error) {
			emissions++
			return 1, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, notificationRepo, now)

	if err := svc.Reject(context.Background(), 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emissions != 0 {
		t.Errorf("reject emitted %d notifications, want 0", emissions)
	}
}

func TestRejectApprovedParticipationConflicts(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2, IsApproved: true}, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if err := svc.Reject(context.Background(), 7, 1); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestRejectAlreadyRejectedIsIdempotent(t *testing.T) {
	now := time.Now()
	postRepo := &mockPostRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.Post, error) {
			return openPost(id, 1), nil
		},
	}
	participantRepo := &mockParticipantRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.PostParticipant, error) {
			return &models.PostParticipant{ID: id, PostID: 5, UserID: 2, IsRejected: true}, nil
		},
	}

	svc := newParticipantService(participantRepo, postRepo, &mockNotificationRepo{}, now)

	if err := svc.Reject(context.Background(), 7, 1); err != nil {
		t.Errorf("re-rejection should be a no-op success, got %v", err)
	}
}
