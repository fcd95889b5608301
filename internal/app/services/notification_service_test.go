package services

import (
	"context"
	"testing"
	"time"

	"github.com/deniz/teamup/internal/app/models"
	"github.com/rs/zerolog"
)

func TestListForReturnsNewestFirst(t *testing.T) {
	now := time.Now()
	repo := &mockNotificationRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Notification, error) {
			return []*models.Notification{
				{ID: 2, UserID: userID, Message: "second", CreatedAt: now},
				{ID: 1, UserID: userID, Message: "first", IsRead: true, CreatedAt: now.Add(-time.Minute)},
			}, nil
		},
	}

	svc := NewNotificationService(repo, zerolog.Nop())

	notifications, err := svc.ListFor(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if notifications[0].ID != 2 || notifications[1].ID != 1 {
		t.Errorf("order not preserved: %+v", notifications)
	}
	if notifications[0].IsRead || !notifications[1].IsRead {
		t.Errorf("read flags not mapped: %+v", notifications)
	}
}

func TestMarkAllReadReturnsAffectedCount(t *testing.T) {
	marked := false
	repo := &mockNotificationRepo{
		MarkAllReadFunc: func(ctx context.Context, userID int64) (int64, error) {
			marked = true
			return 3, nil
		},
	}

	svc := NewNotificationService(repo, zerolog.Nop())

	affected, err := svc.MarkAllRead(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !marked {
		t.Fatal("repository was not called")
	}
	if affected != 3 {
		t.Errorf("affected = %d, want 3", affected)
	}
}

func TestMarkAllReadWithNothingUnread(t *testing.T) {
	repo := &mockNotificationRepo{
		MarkAllReadFunc: func(ctx context.Context, userID int64) (int64, error) {
			return 0, nil
		},
	}

	svc := NewNotificationService(repo, zerolog.Nop())

	affected, err := svc.MarkAllRead(context.Background(), 2)
	if err != nil {
		t.Errorf("zero affected rows must not be an error, got %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestUnreadCount(t *testing.T) {
	repo := &mockNotificationRepo{
		CountUnreadFunc: func(ctx context.Context, userID int64) (int, error) {
			return 4, nil
		},
	}

	svc := NewNotificationService(repo, zerolog.Nop())

	count, err := svc.UnreadCount(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}
