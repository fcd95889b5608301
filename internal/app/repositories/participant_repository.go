package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/deniz/teamup/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueApplicationConstraint is the unique index on (post_id, user_id).
// It is the hard backstop for the duplicate-apply race: two concurrent
// applications can both pass the advisory pre-check, only one can commit.
const uniqueApplicationConstraint = "post_participants_post_id_user_id_key"

// participantRepository implements ParticipantRepository over pgx
type participantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) ParticipantRepository {
	return &participantRepository{db: db}
}

// GetByID retrieves a join request by id
func (r *participantRepository) GetByID(ctx context.Context, id int64) (*models.PostParticipant, error) {
	query := squirrel.Select(
		"pp.id", "pp.post_id", "pp.user_id", "pp.is_approved", "pp.is_rejected", "pp.joined_at",
	).
		From("post_participants pp").
		Where("pp.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var participant models.PostParticipant
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&participant.ID,
		&participant.PostID,
		&participant.UserID,
		&participant.IsApproved,
		&participant.IsRejected,
		&participant.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &participant, nil
}

// ListByPostID retrieves all join requests for a post with basic user data
func (r *participantRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PostParticipant, error) {
	query := squirrel.Select(
		"pp.id", "pp.post_id", "pp.user_id", "pp.is_approved", "pp.is_rejected", "pp.joined_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.profile_photo_url",
	).
		From("post_participants pp").
		Join("users u ON u.id = pp.user_id").
		Where("pp.post_id = ?", postID).
		OrderBy("pp.joined_at ASC").
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

	var participants []*models.PostParticipant
	for rows.Next() {
		var participant models.PostParticipant
		var user models.User
		err := rows.Scan(
			&participant.ID,
			&participant.PostID,
			&participant.UserID,
			&participant.IsApproved,
			&participant.IsRejected,
			&participant.JoinedAt,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.ProfilePhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participant.User = &user
		participants = append(participants, &participant)
	}

	return participants, nil
}

// ListApprovedPostsByUserID retrieves the posts a user joined and was approved into
func (r *participantRepository) ListApprovedPostsByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := squirrel.Select(
		"p.id", "p.title", "p.content", "p.image_url", "p.required_expertise",
		"p.expiration_date", "p.is_closed", "p.max_participants", "p.author_id",
		"p.version", "p.created_at", "p.updated_at",
	).
		From("post_participants pp").
		Join("posts p ON p.id = pp.post_id").
		Where("pp.user_id = ? AND pp.is_approved = TRUE", userID).
		OrderBy("p.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return scanPosts(rows)
}

// CountApproved retrieves the number of approved participants for a post
func (r *participantRepository) CountApproved(ctx context.Context, postID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("post_participants").
		Where("post_id = ? AND is_approved = TRUE", postID).
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

// CountApprovedByPostIDs retrieves approved participant counts for multiple posts
func (r *participantRepository) CountApprovedByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	if len(postIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("post_id", "COUNT(*)").
		From("post_participants").
		Where(squirrel.Eq{"post_id": postIDs}).
		Where("is_approved = TRUE").
		GroupBy("post_id").
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

	counts := make(map[int64]int)
	for rows.Next() {
		var postID int64
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[postID] = count
	}

	return counts, nil
}

// ExistsByPostAndUser reports whether the user already has a join request
// on the post, in any state.
func (r *participantRepository) ExistsByPostAndUser(ctx context.Context, postID, userID int64) (bool, error) {
	query := squirrel.Select("1").
		From("post_participants").
		Where("post_id = ? AND user_id = ?", postID, userID).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return exists, nil
}

// CreatePending inserts a PENDING join request. The post row is locked for
// the duration of the transaction so the duplicate check, the capacity
// check and the insert are atomic against concurrent applications and
// approvals. A duplicate always surfaces as ErrAlreadyApplied, even when
// the post is also at capacity.
func (r *participantRepository) CreatePending(ctx context.Context, postID, userID int64) (*models.PostParticipant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxParticipants int
	err = tx.QueryRow(ctx, `SELECT max_participants FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error locking post: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_participants WHERE post_id = $1 AND user_id = $2)`, postID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking existing participation: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	var approved int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM post_participants WHERE post_id = $1 AND is_approved = TRUE`, postID,
	).Scan(&approved)
	if err != nil {
		return nil, fmt.Errorf("error counting approved participants: %w", err)
	}

	if approved >= maxParticipants {
		return nil, apperrors.ErrCapacityExceeded
	}

	var participant models.PostParticipant
	err = tx.QueryRow(ctx,
		`INSERT INTO post_participants (post_id, user_id) VALUES ($1, $2) RETURNING id, post_id, user_id, is_approved, is_rejected, joined_at`,
		postID, userID,
	).Scan(
		&participant.ID,
		&participant.PostID,
		&participant.UserID,
		&participant.IsApproved,
		&participant.IsRejected,
		&participant.JoinedAt,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uniqueApplicationConstraint) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("error inserting participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &participant, nil
}

// Approve flips a pending join request to approved. Returns false when the
// row was already approved, which makes re-approval a no-op for callers.
// The post row is locked so the capacity check holds against a concurrent
// approval of another applicant.
func (r *participantRepository) Approve(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var postID int64
	err = tx.QueryRow(ctx, `SELECT post_id FROM post_participants WHERE id = $1`, id).Scan(&postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrParticipantNotFound
		}
		return false, fmt.Errorf("error reading participant: %w", err)
	}

	var maxParticipants int
	err = tx.QueryRow(ctx, `SELECT max_participants FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrPostNotFound
		}
		return false, fmt.Errorf("error locking post: %w", err)
	}

	// Re-read the flags under the post lock. An approval that committed
	// between the caller's pre-read and this transaction must surface as
	// a no-op, not as a capacity failure.
	var isApproved, isRejected bool
	err = tx.QueryRow(ctx,
		`SELECT is_approved, is_rejected FROM post_participants WHERE id = $1`, id,
	).Scan(&isApproved, &isRejected)
	if err != nil {
		return false, fmt.Errorf("error re-reading participant: %w", err)
	}
	if isApproved || isRejected {
		return false, nil
	}

	var approved int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM post_participants WHERE post_id = $1 AND is_approved = TRUE`, postID,
	).Scan(&approved)
	if err != nil {
		return false, fmt.Errorf("error counting approved participants: %w", err)
	}

	if approved >= maxParticipants {
		return false, apperrors.ErrCapacityExceeded
	}

	result, err := tx.Exec(ctx,
		`UPDATE post_participants SET is_approved = TRUE WHERE id = $1 AND is_approved = FALSE AND is_rejected = FALSE`, id,
	)
	if err != nil {
		return false, fmt.Errorf("error approving participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Reject flips a pending join request to rejected. Returns false when the
// row was already rejected.
func (r *participantRepository) Reject(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE post_participants SET is_rejected = TRUE WHERE id = $1 AND is_approved = FALSE AND is_rejected = FALSE`, id,
	)
	if err != nil {
		return false, fmt.Errorf("error rejecting participant: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
