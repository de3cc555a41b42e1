package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/repostflow/internal/models"
	"github.com/maheshrc27/repostflow/internal/repository"
)

// Clock abstracts time for the rate-limited queue loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// PublishService owns the post lifecycle from queued onward: staging,
// rate-limited publishing and idempotent cleanup.
type PublishService interface {
	Enqueue(ctx context.Context, postID, mediaType string) error
	ProcessQueue(ctx context.Context) error
	Delete(ctx context.Context, postID, mediaType string) error
}

type publishService struct {
	pr      repository.PostRepository
	gc      repository.GeneralConfigRepository
	cr      repository.CredentialsRepository
	session SessionService
	media   MediaService
	client  PrivateAPIClient
	clock   Clock

	// lastPublish is the start time of the last successful publish.
	lastPublish time.Time
}

func NewPublishService(
	pr repository.PostRepository,
	gc repository.GeneralConfigRepository,
	cr repository.CredentialsRepository,
	session SessionService,
	media MediaService,
	client PrivateAPIClient) PublishService {
	return &publishService{
		pr:      pr,
		gc:      gc,
		cr:      cr,
		session: session,
		media:   media,
		client:  client,
		clock:   realClock{},
	}
}

// Enqueue stages the post's media locally and moves it to queued.
func (s *publishService) Enqueue(ctx context.Context, postID, mediaType string) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %s not found", postID)
	}
	if post.Status != models.PostStatusFetched {
		return fmt.Errorf("post %s is %s, only fetched posts can be queued", postID, post.Status)
	}

	path, err := s.media.Stage(ctx, post)
	if err != nil {
		return fmt.Errorf("stage post %s: %w", postID, err)
	}

	if err := s.pr.SetLocalMediaPath(ctx, postID, path); err != nil {
		return err
	}
	if err := s.pr.UpdateStatus(ctx, postID, models.PostStatusQueued); err != nil {
		return err
	}
	return nil
}

// ProcessQueue drains queued posts in enqueue order, strictly serially,
// never starting a publish sooner than the configured upload rate after the
// previous successful one. Per-post failures leave the post queued and the
// loop moves on.
func (s *publishService) ProcessQueue(ctx context.Context) error {
	cfg, ok, err := s.gc.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("general config not initialized")
	}

	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no credentials configured")
	}

	posts, err := s.pr.ListQueued(ctx)
	if err != nil {
		return err
	}

	rate := time.Duration(cfg.UploadRate) * time.Minute

	var failures []error
	for _, post := range posts {
		if !s.lastPublish.IsZero() {
			elapsed := s.clock.Now().Sub(s.lastPublish)
			if elapsed < rate {
				s.clock.Sleep(rate - elapsed)
			}
		}

		started := s.clock.Now()
		if err := s.publishOne(ctx, post, cfg.DescriptionBoilerplate, creds.Username); err != nil {
			slog.Error("publish attempt failed", "post_id", post.ID, "error", err)
			failures = append(failures, fmt.Errorf("post %s: %w", post.ID, err))
			continue
		}
		s.lastPublish = started
	}

	return errors.Join(failures...)
}

// publishOne runs a single attempt. The staged file is deleted only after
// the terminal status decision; every failure path leaves it in place.
func (s *publishService) publishOne(ctx context.Context, post *models.Post, boilerplate, username string) error {
	if err := s.session.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	hostedURL, err := s.media.Prepare(ctx, post, username)
	if err != nil {
		return err
	}
	if err := s.pr.SetHostedMediaURL(ctx, post.ID, hostedURL); err != nil {
		return err
	}

	sessionID, err := s.session.SessionID(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	caption := post.Caption
	if boilerplate != "" {
		caption = caption + "\n\n" + boilerplate
	}

	var permalink string
	if post.MediaType == models.MediaTypeVideo {
		permalink, err = s.client.PublishVideoByURL(ctx, sessionID, hostedURL, caption)
	} else {
		permalink, err = s.client.PublishPhotoByURL(ctx, sessionID, hostedURL, caption)
	}
	if err != nil {
		return err
	}

	slog.Info("published post", "post_id", post.ID, "permalink", permalink)

	if err := s.pr.UpdateStatus(ctx, post.ID, models.PostStatusPosted); err != nil {
		return err
	}

	if err := s.media.Cleanup(post.ID, post.MediaType); err != nil {
		slog.Error("cleanup after publish failed", "post_id", post.ID, "error", err)
	}
	return nil
}

// Delete marks a post deleted and removes its staged file. Both halves are
// idempotent: repeating the call is harmless.
func (s *publishService) Delete(ctx context.Context, postID, mediaType string) error {
	if err := s.media.Cleanup(postID, mediaType); err != nil {
		return err
	}
	return s.pr.UpdateStatus(ctx, postID, models.PostStatusDeleted)
}
