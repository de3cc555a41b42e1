package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/repostflow/internal/models"
)

type HashtagRepository interface {
	List(ctx context.Context) ([]*models.Hashtag, error)
	Create(ctx context.Context, name string) (int64, error)
	Remove(ctx context.Context, id int64) error
}

type hashtagRepository struct {
	db *sql.DB
}

func NewHashtagRepository(db *sql.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) List(ctx context.Context) ([]*models.Hashtag, error) {
	query := `SELECT id, name, created_at FROM hashtags ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var hashtags []*models.Hashtag
	for rows.Next() {
		var h models.Hashtag
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		hashtags = append(hashtags, &h)
	}
	return hashtags, nil
}

func (r *hashtagRepository) Create(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO hashtags (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *hashtagRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM hashtags WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
