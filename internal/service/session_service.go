package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	config "github.com/maheshrc27/repostflow/configs"
	"github.com/maheshrc27/repostflow/internal/repository"
	"github.com/maheshrc27/repostflow/pkg/utils"
)

// SessionService keeps one authenticated session with the destination
// account alive. It is the only writer of the credentials record's session
// field.
type SessionService interface {
	// EnsureAuthenticated returns nil when a valid session exists,
	// refreshing it by login when needed. Failure means "cannot publish
	// now", never a crash.
	EnsureAuthenticated(ctx context.Context) error
	// SessionID returns the decrypted current session token.
	SessionID(ctx context.Context) (string, error)
}

type sessionService struct {
	cfg    config.Config
	client PrivateAPIClient
	cr     repository.CredentialsRepository

	// mu serializes the check-login-persist sequence so at most one login
	// is in flight.
	mu sync.Mutex
}

func NewSessionService(cfg config.Config, client PrivateAPIClient, cr repository.CredentialsRepository) SessionService {
	return &sessionService{
		cfg:    cfg,
		client: client,
		cr:     cr,
	}
}

func (s *sessionService) EnsureAuthenticated(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	if !ok {
		return fmt.Errorf("%w: no credentials configured", ErrNotAuthenticated)
	}

	if creds.SessionID != "" {
		sessionID, err := utils.Decrypt(creds.SessionID, []byte(s.cfg.SecretKey))
		if err == nil {
			if err := s.client.GetSettings(ctx, sessionID); err == nil {
				return nil
			}
		}
	}

	password, err := utils.Decrypt(creds.Password, []byte(s.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("%w: decrypt password: %v", ErrNotAuthenticated, err)
	}

	sessionID, err := s.client.Login(ctx, creds.Username, password)
	if err != nil {
		slog.Info("login failed", "username", creds.Username)
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	encrypted, err := utils.Encrypt([]byte(sessionID), []byte(s.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("%w: encrypt session: %v", ErrNotAuthenticated, err)
	}

	if err := s.cr.SetSessionID(ctx, encrypted); err != nil {
		return fmt.Errorf("%w: persist session: %v", ErrNotAuthenticated, err)
	}

	return nil
}

func (s *sessionService) SessionID(ctx context.Context) (string, error) {
	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return "", err
	}
	if !ok || creds.SessionID == "" {
		return "", errors.New("no session available")
	}
	return utils.Decrypt(creds.SessionID, []byte(s.cfg.SecretKey))
}
