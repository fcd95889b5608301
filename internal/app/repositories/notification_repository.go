package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// notificationRepository implements NotificationRepository over pgx
type notificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create appends a new unread notification and returns its id
func (r *notificationRepository) Create(ctx context.Context, userID int64, message string) (int64, error) {
	query := squirrel.Insert("notifications").
		Columns("user_id", "message").
		Values(userID, message).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// ListByUserID retrieves all notifications for a user, newest first
func (r *notificationRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Notification, error) {
	query := squirrel.Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

// CountUnread retrieves the number of unread notifications for a user
func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("notifications").
		Where("user_id = ? AND is_read = FALSE", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// MarkAllRead flips every unread notification for the user to read and
// returns the number of rows affected. Calling it again is a no-op.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where("user_id = ? AND is_read = FALSE", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}
