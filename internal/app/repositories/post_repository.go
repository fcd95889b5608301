package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postRepository implements PostRepository over pgx
type postRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) PostRepository {
	return &postRepository{db: db}
}

var postColumns = []string{
	"id", "title", "content", "image_url", "required_expertise",
	"expiration_date", "is_closed", "max_participants", "author_id",
	"version", "created_at", "updated_at",
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.RequiredExpertise,
		&post.ExpirationDate,
		&post.IsClosed,
		&post.MaxParticipants,
		&post.AuthorID,
		&post.Version,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func scanPosts(rows pgx.Rows) ([]*models.Post, error) {
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// Create inserts a new post and returns its id
func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := squirrel.Insert("posts").
		Columns("title", "content", "image_url", "required_expertise",
			"expiration_date", "max_participants", "author_id").
		Values(post.Title, post.Content, post.ImageURL, post.RequiredExpertise,
			post.ExpirationDate, post.MaxParticipants, post.AuthorID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a post by id
func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return post, nil
}

// List retrieves one page of posts ordered by creation time descending
func (r *postRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	return posts, total, nil
}

// ListAll retrieves every post ordered by creation time descending.
// Used by the feed, which mirrors the home page and is not paginated.
func (r *postRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
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

	return scanPosts(rows)
}

// ListByAuthor retrieves all posts created by the given user
func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
		Where("author_id = ?", authorID).
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

	return scanPosts(rows)
}

// Update applies an edit with an optimistic version check. The row is only
// written when the stored version still matches the one the caller read;
// otherwise the update is rejected with ErrConcurrencyConflict.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := squirrel.Update("posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("image_url", post.ImageURL).
		Set("required_expertise", post.RequiredExpertise).
		Set("expiration_date", post.ExpirationDate).
		Set("max_participants", post.MaxParticipants).
		Set("is_closed", post.IsClosed).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", time.Now()).
		Where("id = ? AND version = ?", post.ID, post.Version).
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
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, post.ID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking post existence: %w", err)
		}
		if exists {
			return apperrors.ErrConcurrencyConflict
		}
		return apperrors.ErrPostNotFound
	}

	return nil
}

// UpdateImageURL stores the URL of an uploaded post image
func (r *postRepository) UpdateImageURL(ctx context.Context, postID int64, imageURL string) error {
	query := squirrel.Update("posts").
		Set("image_url", imageURL).
		Set("updated_at", time.Now()).
		Where("id = ?", postID).
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
		return apperrors.ErrPostNotFound
	}

	return nil
}

// Delete removes a post. Participations cascade at the database level.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("posts").
		Where("id = ?", id).
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
		return apperrors.ErrPostNotFound
	}

	return nil
}
