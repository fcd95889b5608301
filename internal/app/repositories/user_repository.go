package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/deniz/teamup/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userRepository implements UserRepository over pgx
type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "address",
	"github_username", "date_of_birth", "languages", "education",
	"experience", "profile_photo_url", "is_active", "created_at", "updated_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Address,
		&user.GitHubUsername,
		&user.DateOfBirth,
		&user.Languages,
		&user.Education,
		&user.Experience,
		&user.ProfilePhotoURL,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its id
func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("email", "password", "first_name", "last_name").
		Values(user.Email, user.Password, user.FirstName, user.LastName).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// FindByID retrieves a user by id
func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := squirrel.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("address", user.Address).
		Set("github_username", user.GitHubUsername).
		Set("date_of_birth", user.DateOfBirth).
		Set("languages", user.Languages).
		Set("education", user.Education).
		Set("experience", user.Experience).
		Set("updated_at", time.Now()).
		Where("id = ?", user.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfilePhoto stores the URL of an uploaded profile photo
func (r *userRepository) UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error {
	query := squirrel.Update("users").
		Set("profile_photo_url", photoURL).
		Set("updated_at", time.Now()).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetSkills retrieves a user's skills in declaration order
func (r *userRepository) GetSkills(ctx context.Context, userID int64) ([]*models.Skill, error) {
	query := squirrel.Select("id", "user_id", "position", "category", "name", "description").
		From("user_skills").
		Where("user_id = ?", userID).
		OrderBy("position ASC").
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

	var skills []*models.Skill
	for rows.Next() {
		var skill models.Skill
		err := rows.Scan(
			&skill.ID,
			&skill.UserID,
			&skill.Position,
			&skill.Category,
			&skill.Name,
			&skill.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		skills = append(skills, &skill)
	}

	return skills, nil
}

// ReplaceSkills atomically replaces the user's full skill list
func (r *userRepository) ReplaceSkills(ctx context.Context, userID int64, skills []*models.Skill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting existing skills: %w", err)
	}

	for i, skill := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, position, category, name, description) VALUES ($1, $2, $3, $4, $5)`,
			userID, i, skill.Category, skill.Name, skill.Description,
		)
		if err != nil {
			return fmt.Errorf("error inserting skill: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
