package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maheshrc27/repostflow/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeGeneralConfigRepo struct {
	cfg *models.GeneralConfig
}

func (f *fakeGeneralConfigRepo) Get(ctx context.Context) (*models.GeneralConfig, bool, error) {
	if f.cfg == nil {
		return nil, false, nil
	}
	copied := *f.cfg
	return &copied, true, nil
}

func (f *fakeGeneralConfigRepo) Update(ctx context.Context, cfg *models.GeneralConfig) error {
	copied := *cfg
	f.cfg = &copied
	return nil
}

type fakeMediaService struct {
	stagePath    string
	stageErr     error
	prepareURL   string
	prepareErr   error
	prepareHook  func()
	cleanupCalls []string
}

func (f *fakeMediaService) Stage(ctx context.Context, post *models.Post) (string, error) {
	return f.stagePath, f.stageErr
}

func (f *fakeMediaService) Prepare(ctx context.Context, post *models.Post, username string) (string, error) {
	if f.prepareHook != nil {
		f.prepareHook()
	}
	return f.prepareURL, f.prepareErr
}

func (f *fakeMediaService) Cleanup(postID, mediaType string) error {
	f.cleanupCalls = append(f.cleanupCalls, postID)
	return nil
}

func queuedPost(id string) *models.Post {
	return &models.Post{
		ID:            id,
		MediaType:     models.MediaTypeImage,
		Caption:       "caption " + id,
		SourceHashtag: "gophers",
		Status:        models.PostStatusQueued,
	}
}

func TestProcessQueueRateLimiting(t *testing.T) {
	repo := &fakePostRepo{posts: []*models.Post{queuedPost("p1"), queuedPost("p2"), queuedPost("p3")}}
	clk := &fakeClock{now: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)}

	var starts []time.Time
	media := &fakeMediaService{
		prepareURL: "https://pub.example/x.png",
		prepareHook: func() {
			starts = append(starts, clk.Now())
		},
	}

	s := &publishService{
		pr:      repo,
		gc:      &fakeGeneralConfigRepo{cfg: &models.GeneralConfig{UploadRate: 2}},
		cr:      &fakeCredentialsRepo{creds: &models.Credentials{Username: "repostaccount"}},
		session: &fakeSessionService{sessionID: "sid"},
		media:   media,
		client:  &fakePrivateAPIClient{permalink: "https://www.instagram.com/p/ok"},
		clock:   clk,
	}

	require.NoError(t, s.ProcessQueue(context.Background()))
	require.Len(t, starts, 3)

	rate := 2 * time.Minute
	for i := 1; i < len(starts); i++ {
		require.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), rate,
			"publish %d started too soon after publish %d", i, i-1)
	}

	for _, id := range []string{"p1", "p2", "p3"} {
		post, _ := repo.GetByID(context.Background(), id)
		require.Equal(t, models.PostStatusPosted, post.Status)
	}
}

func TestQueuedImagePostEndToEnd(t *testing.T) {
	payload := testPNG(t)
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer origin.Close()

	dir := t.TempDir()
	hosting := &fakeHostingService{url: "https://pub.example/hosted.png"}
	media := NewMediaService(hosting, dir)
	client := &fakePrivateAPIClient{permalink: "https://www.instagram.com/p/abc"}

	repo := &fakePostRepo{posts: []*models.Post{{
		ID:             "p1",
		MediaType:      models.MediaTypeImage,
		Caption:        "Hello",
		SourceHashtag:  "gophers",
		HostedMediaURL: origin.URL + "/p1.png",
		Status:         models.PostStatusFetched,
	}}}

	s := &publishService{
		pr:      repo,
		gc:      &fakeGeneralConfigRepo{cfg: &models.GeneralConfig{UploadRate: 0, DescriptionBoilerplate: "reposted with permission"}},
		cr:      &fakeCredentialsRepo{creds: &models.Credentials{Username: "repostaccount"}},
		session: &fakeSessionService{sessionID: "sid"},
		media:   media,
		client:  client,
		clock:   &fakeClock{now: time.Now()},
	}

	ctx := context.Background()
	require.NoError(t, s.Enqueue(ctx, "p1", models.MediaTypeImage))

	stagedPath := filepath.Join(dir, "p1.png")
	_, err := os.Stat(stagedPath)
	require.NoError(t, err, "enqueue must stage the media file")

	post, _ := repo.GetByID(ctx, "p1")
	require.Equal(t, models.PostStatusQueued, post.Status)
	require.Equal(t, stagedPath, post.LocalMediaPath)

	require.NoError(t, s.ProcessQueue(ctx))

	post, _ = repo.GetByID(ctx, "p1")
	require.Equal(t, models.PostStatusPosted, post.Status)
	require.Equal(t, "https://pub.example/hosted.png", post.HostedMediaURL)

	require.Contains(t, client.lastCaption, "Hello")
	require.Contains(t, client.lastCaption, "reposted with permission")

	_, statErr := os.Stat(stagedPath)
	require.True(t, os.IsNotExist(statErr), "staged file must be removed after a successful publish")
}

func TestPublishAuthFailureLeavesPostQueued(t *testing.T) {
	dir := t.TempDir()
	stagedPath := filepath.Join(dir, "p1.png")
	require.NoError(t, os.WriteFile(stagedPath, testPNG(t), 0o644))

	client := &fakePrivateAPIClient{}
	post := queuedPost("p1")
	post.LocalMediaPath = stagedPath
	repo := &fakePostRepo{posts: []*models.Post{post}}

	s := &publishService{
		pr:      repo,
		gc:      &fakeGeneralConfigRepo{cfg: &models.GeneralConfig{UploadRate: 0}},
		cr:      &fakeCredentialsRepo{creds: &models.Credentials{Username: "repostaccount"}},
		session: &fakeSessionService{authErr: ErrNotAuthenticated},
		media:   NewMediaService(&fakeHostingService{}, dir),
		client:  client,
		clock:   &fakeClock{now: time.Now()},
	}

	err := s.ProcessQueue(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)

	got, _ := repo.GetByID(context.Background(), "p1")
	require.Equal(t, models.PostStatusQueued, got.Status, "failed attempt must not lose the post")

	_, statErr := os.Stat(stagedPath)
	require.NoError(t, statErr, "staged file must survive a failed attempt")
	require.Zero(t, client.publishCalls)
}

func TestPublishRejectionLeavesPostQueued(t *testing.T) {
	dir := t.TempDir()
	stagedPath := filepath.Join(dir, "p1.png")
	require.NoError(t, os.WriteFile(stagedPath, testPNG(t), 0o644))

	post := queuedPost("p1")
	post.LocalMediaPath = stagedPath
	repo := &fakePostRepo{posts: []*models.Post{post}}

	s := &publishService{
		pr:      repo,
		gc:      &fakeGeneralConfigRepo{cfg: &models.GeneralConfig{UploadRate: 0}},
		cr:      &fakeCredentialsRepo{creds: &models.Credentials{Username: "repostaccount"}},
		session: &fakeSessionService{sessionID: "sid"},
		media:   NewMediaService(&fakeHostingService{url: "https://pub.example/x.png"}, dir),
		client:  &fakePrivateAPIClient{publishErr: ErrPublishRejected},
		clock:   &fakeClock{now: time.Now()},
	}

	err := s.ProcessQueue(context.Background())
	require.ErrorIs(t, err, ErrPublishRejected)

	got, _ := repo.GetByID(context.Background(), "p1")
	require.Equal(t, models.PostStatusQueued, got.Status)

	_, statErr := os.Stat(stagedPath)
	require.NoError(t, statErr)
}

func TestDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	stagedPath := filepath.Join(dir, "p1.png")
	require.NoError(t, os.WriteFile(stagedPath, []byte("x"), 0o644))

	repo := &fakePostRepo{posts: []*models.Post{{
		ID:        "p1",
		MediaType: models.MediaTypeImage,
		Status:    models.PostStatusFetched,
	}}}

	s := &publishService{
		pr:    repo,
		media: NewMediaService(&fakeHostingService{}, dir),
		clock: &fakeClock{now: time.Now()},
	}

	ctx := context.Background()
	require.NoError(t, s.Delete(ctx, "p1", models.MediaTypeImage))
	require.NoError(t, s.Delete(ctx, "p1", models.MediaTypeImage), "second delete must succeed")

	got, _ := repo.GetByID(ctx, "p1")
	require.Equal(t, models.PostStatusDeleted, got.Status)
}

func TestEnqueueRejectsNonFetchedPosts(t *testing.T) {
	repo := &fakePostRepo{posts: []*models.Post{{
		ID:     "p1",
		Status: models.PostStatusPosted,
	}}}

	s := &publishService{
		pr:    repo,
		media: &fakeMediaService{},
		clock: &fakeClock{now: time.Now()},
	}

	err := s.Enqueue(context.Background(), "p1", models.MediaTypeImage)
	require.Error(t, err)

	got, _ := repo.GetByID(context.Background(), "p1")
	require.Equal(t, models.PostStatusPosted, got.Status)
}
