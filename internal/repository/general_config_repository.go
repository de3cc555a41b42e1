package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/repostflow/internal/models"
)

type GeneralConfigRepository interface {
	Get(ctx context.Context) (*models.GeneralConfig, bool, error)
	Update(ctx context.Context, cfg *models.GeneralConfig) error
}

type generalConfigRepository struct {
	db *sql.DB
}

func NewGeneralConfigRepository(db *sql.DB) GeneralConfigRepository {
	return &generalConfigRepository{db: db}
}

func (r *generalConfigRepository) Get(ctx context.Context) (*models.GeneralConfig, bool, error) {
	query := `
		SELECT id, upload_rate, description_boilerplate, hashtag_fetching_enabled, updated_at
		FROM general_config WHERE id = 1
	`
	row := r.db.QueryRowContext(ctx, query)

	var cfg models.GeneralConfig
	err := row.Scan(&cfg.ID, &cfg.UploadRate, &cfg.DescriptionBoilerplate,
		&cfg.HashtagFetchingEnabled, &cfg.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &cfg, true, nil
}

func (r *generalConfigRepository) Update(ctx context.Context, cfg *models.GeneralConfig) error {
	query := `
		INSERT INTO general_config (id, upload_rate, description_boilerplate, hashtag_fetching_enabled, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET upload_rate = $1, description_boilerplate = $2, hashtag_fetching_enabled = $3, updated_at = $4
	`
	_, err := r.db.ExecContext(ctx, query, cfg.UploadRate, cfg.DescriptionBoilerplate,
		cfg.HashtagFetchingEnabled, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
