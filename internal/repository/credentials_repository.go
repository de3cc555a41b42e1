package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/repostflow/internal/models"
)

type CredentialsRepository interface {
	Get(ctx context.Context) (*models.Credentials, bool, error)
	Save(ctx context.Context, c *models.Credentials) error
	SetSessionID(ctx context.Context, sessionID string) error
	UpdateAPIFields(ctx context.Context, accessToken, clientSecret, clientID, facebookID string) error
}

type credentialsRepository struct {
	db *sql.DB
}

func NewCredentialsRepository(db *sql.DB) CredentialsRepository {
	return &credentialsRepository{db: db}
}

// Get returns the singleton credentials row.
func (r *credentialsRepository) Get(ctx context.Context) (*models.Credentials, bool, error) {
	query := `
		SELECT id, username, password, session_id, facebook_id, access_token, client_secret, client_id, updated_at
		FROM credentials WHERE id = 1
	`
	row := r.db.QueryRowContext(ctx, query)

	var c models.Credentials
	err := row.Scan(&c.ID, &c.Username, &c.Password, &c.SessionID, &c.FacebookID,
		&c.AccessToken, &c.ClientSecret, &c.ClientID, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &c, true, nil
}

func (r *credentialsRepository) Save(ctx context.Context, c *models.Credentials) error {
	query := `
		INSERT INTO credentials (id, username, password, session_id, facebook_id, access_token, client_secret, client_id, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET username = $1, password = $2, session_id = $3, facebook_id = $4,
			access_token = $5, client_secret = $6, client_id = $7, updated_at = $8
	`
	_, err := r.db.ExecContext(ctx, query, c.Username, c.Password, c.SessionID,
		c.FacebookID, c.AccessToken, c.ClientSecret, c.ClientID, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// SetSessionID persists a refreshed session token, leaving every other
// credential field unchanged.
func (r *credentialsRepository) SetSessionID(ctx context.Context, sessionID string) error {
	query := `UPDATE credentials SET session_id = $1, updated_at = $2 WHERE id = 1`
	_, err := r.db.ExecContext(ctx, query, sessionID, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *credentialsRepository) UpdateAPIFields(ctx context.Context, accessToken, clientSecret, clientID, facebookID string) error {
	query := `
		UPDATE credentials
		SET access_token = $1,
			client_secret = $2,
			client_id = $3,
			facebook_id = $4,
			updated_at = $5
		WHERE id = 1
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, clientSecret, clientID, facebookID, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
