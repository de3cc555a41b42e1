package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/maheshrc27/repostflow/internal/models"
	"github.com/maheshrc27/repostflow/internal/transfer"
)

// In-memory fakes for the repository and client interfaces used across the
// service tests.

type fakeCredentialsRepo struct {
	mu        sync.Mutex
	creds     *models.Credentials
	saved     []*models.Credentials
	sessionID string
	getErr    error
}

func (f *fakeCredentialsRepo) Get(ctx context.Context) (*models.Credentials, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	if f.creds == nil {
		return nil, false, nil
	}
	copied := *f.creds
	return &copied, true, nil
}

func (f *fakeCredentialsRepo) Save(ctx context.Context, c *models.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *c
	f.creds = &copied
	f.saved = append(f.saved, &copied)
	return nil
}

func (f *fakeCredentialsRepo) SetSessionID(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionID = sessionID
	if f.creds != nil {
		f.creds.SessionID = sessionID
	}
	return nil
}

func (f *fakeCredentialsRepo) UpdateAPIFields(ctx context.Context, accessToken, clientSecret, clientID, facebookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.creds == nil {
		f.creds = &models.Credentials{}
	}
	f.creds.AccessToken = accessToken
	f.creds.ClientSecret = clientSecret
	f.creds.ClientID = clientID
	f.creds.FacebookID = facebookID
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts []*models.Post
}

func (f *fakePostRepo) find(postID string) *models.Post {
	for _, p := range f.posts {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

func (f *fakePostRepo) Upsert(ctx context.Context, posts []*models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range posts {
		exists := false
		for _, existing := range f.posts {
			if existing.ID == p.ID && existing.SourceHashtag == p.SourceHashtag {
				exists = true
				break
			}
		}
		if !exists {
			copied := *p
			f.posts = append(f.posts, &copied)
		}
	}
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) ListNonDeleted(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Post
	for _, p := range f.posts {
		if p.Status != models.PostStatusDeleted {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ListAll(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePostRepo) ListQueued(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Post
	for _, p := range f.posts {
		if p.Status == models.PostStatusQueued {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

// UpdateStatus mirrors the SQL guard: an illegal transition is ignored.
func (f *fakePostRepo) UpdateStatus(ctx context.Context, postID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.find(postID)
	if p == nil {
		return nil
	}
	if models.CanTransition(p.Status, status) {
		p.Status = status
	}
	return nil
}

func (f *fakePostRepo) SetLocalMediaPath(ctx context.Context, postID, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.find(postID); p != nil {
		p.LocalMediaPath = path
	}
	return nil
}

func (f *fakePostRepo) SetHostedMediaURL(ctx context.Context, postID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.find(postID); p != nil {
		p.HostedMediaURL = url
	}
	return nil
}

type fakeGraphClient struct {
	hashtagID     string
	searchErr     error
	media         []transfer.HashtagMediaItem
	mediaErr      error
	authorName    string
	authorErr     error
	authorDelay   time.Duration
	authorLookups int
}

func (f *fakeGraphClient) SearchHashtag(ctx context.Context, hashtag, facebookID, accessToken string) (string, error) {
	if f.searchErr != nil {
		return "", f.searchErr
	}
	return f.hashtagID, nil
}

func (f *fakeGraphClient) GetHashtagMedia(ctx context.Context, hashtagID, kind, facebookID, accessToken string) ([]transfer.HashtagMediaItem, error) {
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	return f.media, nil
}

func (f *fakeGraphClient) GetAuthorName(ctx context.Context, permalink string) (string, error) {
	f.authorLookups++
	if f.authorDelay > 0 {
		select {
		case <-time.After(f.authorDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.authorErr != nil {
		return "", f.authorErr
	}
	return f.authorName, nil
}

type fakePrivateAPIClient struct {
	settingsErr  error
	sessionID    string
	loginErr     error
	loginCalls   int
	permalink    string
	publishErr   error
	publishCalls int
	lastCaption  string
	lastMediaURL string
	username     string
}

func (f *fakePrivateAPIClient) GetSettings(ctx context.Context, sessionID string) error {
	return f.settingsErr
}

func (f *fakePrivateAPIClient) Login(ctx context.Context, username, password string) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.sessionID, nil
}

func (f *fakePrivateAPIClient) PublishPhotoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error) {
	f.publishCalls++
	f.lastCaption = caption
	f.lastMediaURL = mediaURL
	if f.publishErr != nil {
		return "", f.publishErr
	}
	return f.permalink, nil
}

func (f *fakePrivateAPIClient) PublishVideoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error) {
	return f.PublishPhotoByURL(ctx, sessionID, mediaURL, caption)
}

func (f *fakePrivateAPIClient) GetUsernameByID(ctx context.Context, sessionID, userID string) (string, error) {
	return f.username, nil
}

type fakeHostingService struct {
	url         string
	err         error
	uploads     int
	lastKey     string
	lastType    string
	lastPayload []byte
}

func (f *fakeHostingService) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	f.uploads++
	f.lastKey = key
	f.lastType = contentType
	f.lastPayload = file
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeSessionService struct {
	authErr   error
	sessionID string
}

func (f *fakeSessionService) EnsureAuthenticated(ctx context.Context) error {
	return f.authErr
}

func (f *fakeSessionService) SessionID(ctx context.Context) (string, error) {
	if f.sessionID == "" {
		return "", errors.New("no session available")
	}
	return f.sessionID, nil
}

// fakeClock advances instantly on Sleep and records every wait.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d)
}
