package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/maheshrc27/repostflow/configs"
	"github.com/maheshrc27/repostflow/internal/transfer"
)

// PrivateAPIClient talks to the instagrapi-style REST bridge in front of the
// destination platform's private API. All endpoints take form-encoded
// bodies and the session id as a field.
type PrivateAPIClient interface {
	GetSettings(ctx context.Context, sessionID string) error
	Login(ctx context.Context, username, password string) (string, error)
	PublishPhotoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error)
	PublishVideoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error)
	GetUsernameByID(ctx context.Context, sessionID, userID string) (string, error)
}

type privateAPIClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewPrivateAPIClient(cfg config.Config) PrivateAPIClient {
	return &privateAPIClient{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    cfg.PrivateAPIURL,
	}
}

// GetSettings is the lightweight session validity probe. A non-2xx answer
// means the session id is stale or absent.
func (c *privateAPIClient) GetSettings(ctx context.Context, sessionID string) error {
	reqURL := fmt.Sprintf("%s/auth/settings/get?sessionid=%s", c.baseURL, url.QueryEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("session check: unexpected status code %d", resp.StatusCode)
	}
	return nil
}

// Login performs a credential login and returns the new session id.
func (c *privateAPIClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.postForm(ctx, "/auth/login", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: unexpected status code %d", resp.StatusCode)
	}

	var result transfer.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if result.SessionID == "" {
		return "", fmt.Errorf("login: no session id returned")
	}

	return result.SessionID, nil
}

func (c *privateAPIClient) PublishPhotoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error) {
	return c.publishByURL(ctx, "/photo/upload/by_url", sessionID, mediaURL, caption)
}

func (c *privateAPIClient) PublishVideoByURL(ctx context.Context, sessionID, mediaURL, caption string) (string, error) {
	return c.publishByURL(ctx, "/video/upload/by_url", sessionID, mediaURL, caption)
}

func (c *privateAPIClient) publishByURL(ctx context.Context, path, sessionID, mediaURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("sessionid", sessionID)
	form.Set("url", mediaURL)
	form.Set("caption", caption)

	resp, err := c.postForm(ctx, path, form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrPublishRejected, resp.StatusCode)
	}

	var result transfer.PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrPublishRejected, err)
	}
	if result.Code == "" {
		return "", fmt.Errorf("%w: no media code returned", ErrPublishRejected)
	}

	return fmt.Sprintf("https://www.instagram.com/p/%s", result.Code), nil
}

// GetUsernameByID resolves an account id to its username through the
// private API.
func (c *privateAPIClient) GetUsernameByID(ctx context.Context, sessionID, userID string) (string, error) {
	form := url.Values{}
	form.Set("sessionid", sessionID)
	form.Set("user_id", userID)

	resp, err := c.postForm(ctx, "/user/info", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user info: unexpected status code %d", resp.StatusCode)
	}

	var result transfer.UserInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return result.Username, nil
}

func (c *privateAPIClient) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return resp, nil
}
