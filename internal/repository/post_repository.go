package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/repostflow/internal/models"
)

type PostRepository interface {
	Upsert(ctx context.Context, posts []*models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListNonDeleted(ctx context.Context) ([]*models.Post, error)
	ListAll(ctx context.Context) ([]*models.Post, error)
	ListQueued(ctx context.Context) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, postID, status string) error
	SetLocalMediaPath(ctx context.Context, postID, path string) error
	SetHostedMediaURL(ctx context.Context, postID, url string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `post_id, media_type, local_media_path, caption, permalink, source_hashtag,
	hosted_media_url, discovered_date, author_username, parent_id, status, created_at, updated_at`

// Upsert inserts discovered posts. A post already known under the same
// (post_id, source_hashtag) identity is left untouched, so re-ingestion can
// never duplicate a record or move its status backward.
func (r *postRepository) Upsert(ctx context.Context, posts []*models.Post) error {
	query := `
		INSERT INTO posts (post_id, media_type, local_media_path, caption, permalink,
			source_hashtag, hosted_media_url, discovered_date, author_username, parent_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (post_id, source_hashtag) DO NOTHING
	`
	for _, p := range posts {
		_, err := r.db.ExecContext(ctx, query,
			p.ID, p.MediaType, p.LocalMediaPath, p.Caption, p.Permalink,
			p.SourceHashtag, p.HostedMediaURL, p.DiscoveredDate, p.AuthorUsername,
			p.ParentID, p.Status)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`
	row := r.db.QueryRowContext(ctx, query, postID)

	var post models.Post
	err := scanPost(row.Scan, &post)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) ListNonDeleted(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status != $1 ORDER BY created_at DESC`
	return r.list(ctx, query, models.PostStatusDeleted)
}

func (r *postRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListQueued returns queued posts in enqueue order.
func (r *postRepository) ListQueued(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY updated_at ASC`
	return r.list(ctx, query, models.PostStatusQueued)
}

func (r *postRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		if err := scanPost(rows.Scan, &post); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

// UpdateStatus applies a status change only when the transition is legal.
// Illegal transitions match no row and are silently ignored, so posted and
// deleted rows can never be moved back.
func (r *postRepository) UpdateStatus(ctx context.Context, postID, status string) error {
	legalFrom := make([]string, 0, 2)
	for _, from := range []string{models.PostStatusFetched, models.PostStatusQueued,
		models.PostStatusPosted, models.PostStatusDeleted} {
		if models.CanTransition(from, status) {
			legalFrom = append(legalFrom, from)
		}
	}

	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE post_id = $3 AND status = ANY($4)
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID, pq.Array(legalFrom))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetLocalMediaPath(ctx context.Context, postID, path string) error {
	query := `UPDATE posts SET local_media_path = $1, updated_at = $2 WHERE post_id = $3`
	_, err := r.db.ExecContext(ctx, query, path, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetHostedMediaURL(ctx context.Context, postID, url string) error {
	query := `UPDATE posts SET hosted_media_url = $1, updated_at = $2 WHERE post_id = $3`
	_, err := r.db.ExecContext(ctx, query, url, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func scanPost(scan func(dest ...interface{}) error, post *models.Post) error {
	return scan(&post.ID, &post.MediaType, &post.LocalMediaPath, &post.Caption,
		&post.Permalink, &post.SourceHashtag, &post.HostedMediaURL, &post.DiscoveredDate,
		&post.AuthorUsername, &post.ParentID, &post.Status, &post.CreatedAt, &post.UpdatedAt)
}
