package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// refreshTokenRepository implements RefreshTokenRepository over pgx
type refreshTokenRepository struct {
	db *pgxpool.Pool
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository
func NewRefreshTokenRepository(db *pgxpool.Pool) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create stores a refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := squirrel.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(token.UserID, token.Token, token.ExpiresAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// FindByToken retrieves a stored refresh token
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := squirrel.Select("id", "user_id", "token", "expires_at", "created_at").
		From("refresh_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var stored models.RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.Token,
		&stored.ExpiresAt,
		&stored.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &stored, nil
}

// Delete removes a stored refresh token
func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	query := squirrel.Delete("refresh_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// DeleteByUserID removes all refresh tokens belonging to a user
func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := squirrel.Delete("refresh_tokens").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
