package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	config "github.com/maheshrc27/repostflow/configs"
	"github.com/maheshrc27/repostflow/internal/transfer"
)

// FetchKind selects which hashtag media edge is queried.
const (
	FetchKindRecent = "recent_media"
	FetchKindTop    = "top_media"
)

type GraphClient interface {
	SearchHashtag(ctx context.Context, hashtag, facebookID, accessToken string) (string, error)
	GetHashtagMedia(ctx context.Context, hashtagID, kind, facebookID, accessToken string) ([]transfer.HashtagMediaItem, error)
	GetAuthorName(ctx context.Context, permalink string) (string, error)
}

type graphClient struct {
	httpClient *http.Client
	baseURL    string
	oembedURL  string
}

func NewGraphClient(cfg config.Config) GraphClient {
	return &graphClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.GraphAPIURL,
		oembedURL:  cfg.OembedAPIURL,
	}
}

// SearchHashtag resolves a hashtag string to the platform's internal
// hashtag id. Returns ErrHashtagNotFound when the search yields nothing.
func (c *graphClient) SearchHashtag(ctx context.Context, hashtag, facebookID, accessToken string) (string, error) {
	reqURL := fmt.Sprintf("%s/ig_hashtag_search?q=%s&user_id=%s&access_token=%s",
		c.baseURL, url.QueryEscape(hashtag), url.QueryEscape(facebookID), url.QueryEscape(accessToken))

	var result transfer.HashtagSearchResponse
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return "", fmt.Errorf("hashtag search: %w", err)
	}

	if result.Error != nil {
		slog.Info(result.Error.Message)
		return "", fmt.Errorf("hashtag search: %s: %w", result.Error.Message, ErrHashtagNotFound)
	}
	if len(result.Data) == 0 {
		return "", ErrHashtagNotFound
	}

	return result.Data[0].ID, nil
}

// GetHashtagMedia fetches the candidate media list for a resolved hashtag
// id. An error field in the response aborts the whole fetch so no partial
// result is committed.
func (c *graphClient) GetHashtagMedia(ctx context.Context, hashtagID, kind, facebookID, accessToken string) ([]transfer.HashtagMediaItem, error) {
	reqURL := fmt.Sprintf(
		"%s/%s/%s?user_id=%s&access_token=%s&fields=id,children{media_url,media_type},caption,media_type,media_url,permalink",
		c.baseURL, hashtagID, kind, url.QueryEscape(facebookID), url.QueryEscape(accessToken))

	var result transfer.HashtagMediaResponse
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return nil, fmt.Errorf("hashtag media: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("hashtag media: %s (code %d)", result.Error.Message, result.Error.Code)
	}

	return result.Data, nil
}

// GetAuthorName resolves a post's author display name via the oEmbed
// endpoint. Callers bound its latency; this call itself does not race a
// timer.
func (c *graphClient) GetAuthorName(ctx context.Context, permalink string) (string, error) {
	reqURL := fmt.Sprintf("%s/?url=%s", c.oembedURL, url.QueryEscape(permalink))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed lookup: unexpected status code %d", resp.StatusCode)
	}

	var result transfer.OembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.AuthorName == "" {
		return "", fmt.Errorf("oembed lookup: empty author name")
	}

	return result.AuthorName, nil
}

func (c *graphClient) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
