package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	config "github.com/maheshrc27/repostflow/configs"
	"github.com/maheshrc27/repostflow/internal/models"
	"github.com/maheshrc27/repostflow/internal/repository"
	"github.com/maheshrc27/repostflow/internal/transfer"
	"github.com/maheshrc27/repostflow/pkg/utils"
)

// GeneralService covers the operator-facing configuration surface:
// credentials, general config and the tracked hashtag set.
type GeneralService interface {
	GetCredentials(ctx context.Context) (*models.Credentials, error)
	UpdateCredentials(ctx context.Context, cu *transfer.CredentialsUpdate) error
	SetAccount(ctx context.Context, username, password string) error
	GetGeneralConfig(ctx context.Context) (*models.GeneralConfig, error)
	UpdateGeneralConfig(ctx context.Context, gu *transfer.GeneralConfigUpdate) error
	ListHashtags(ctx context.Context) ([]*models.Hashtag, error)
	AddHashtag(ctx context.Context, name string) error
	RemoveHashtag(ctx context.Context, id int64) error
}

type generalService struct {
	cfg config.Config
	cr  repository.CredentialsRepository
	gc  repository.GeneralConfigRepository
	hr  repository.HashtagRepository
}

func NewGeneralService(
	cfg config.Config,
	cr repository.CredentialsRepository,
	gc repository.GeneralConfigRepository,
	hr repository.HashtagRepository) GeneralService {
	return &generalService{
		cfg: cfg,
		cr:  cr,
		gc:  gc,
		hr:  hr,
	}
}

func (s *generalService) GetCredentials(ctx context.Context) (*models.Credentials, error) {
	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		err = errors.New("credentials are not configured")
		slog.Info(err.Error())
		return nil, err
	}
	return creds, nil
}

func (s *generalService) UpdateCredentials(ctx context.Context, cu *transfer.CredentialsUpdate) error {
	return s.cr.UpdateAPIFields(ctx, cu.AccessToken, cu.ClientSecret, cu.ClientID, cu.IgAccountID)
}

// SetAccount stores the destination account login. The password is
// encrypted at rest; an existing session is discarded so the next publish
// logs in fresh.
func (s *generalService) SetAccount(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	encrypted, err := utils.Encrypt([]byte(password), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		creds = &models.Credentials{}
	}

	creds.Username = username
	creds.Password = encrypted
	creds.SessionID = ""

	return s.cr.Save(ctx, creds)
}

func (s *generalService) GetGeneralConfig(ctx context.Context) (*models.GeneralConfig, error) {
	cfg, ok, err := s.gc.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		err = errors.New("general config is not initialized")
		slog.Info(err.Error())
		return nil, err
	}
	return cfg, nil
}

func (s *generalService) UpdateGeneralConfig(ctx context.Context, gu *transfer.GeneralConfigUpdate) error {
	if gu.UploadRate < 0 {
		return errors.New("upload rate cannot be negative")
	}
	return s.gc.Update(ctx, &models.GeneralConfig{
		UploadRate:             gu.UploadRate,
		DescriptionBoilerplate: gu.DescriptionBoilerplate,
		HashtagFetchingEnabled: gu.HashtagFetchingEnabled,
	})
}

func (s *generalService) ListHashtags(ctx context.Context) ([]*models.Hashtag, error) {
	return s.hr.List(ctx)
}

func (s *generalService) AddHashtag(ctx context.Context, name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	if name == "" {
		return errors.New("hashtag name is required")
	}
	_, err := s.hr.Create(ctx, name)
	return err
}

func (s *generalService) RemoveHashtag(ctx context.Context, id int64) error {
	return s.hr.Remove(ctx, id)
}
