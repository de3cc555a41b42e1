package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/h2non/filetype"
	"github.com/maheshrc27/repostflow/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// MediaService stages, transforms and re-hosts the media behind a post.
type MediaService interface {
	Stage(ctx context.Context, post *models.Post) (string, error)
	Prepare(ctx context.Context, post *models.Post, username string) (string, error)
	Cleanup(postID, mediaType string) error
}

type mediaService struct {
	hosting    HostingService
	httpClient *http.Client
	storageDir string
}

func NewMediaService(hosting HostingService, storageDir string) MediaService {
	return &mediaService{
		hosting:    hosting,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		storageDir: storageDir,
	}
}

// Stage downloads the origin media into the storage directory under
// <postID>.png or <postID>.mp4. The sniffed content decides the extension
// when the recorded media type is ambiguous.
func (s *mediaService) Stage(ctx context.Context, post *models.Post) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, post.HostedMediaURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download media: unexpected status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("download media: %w", err)
	}

	name := models.MediaFileName(post.ID, post.MediaType)
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Type == "video" {
		name = models.MediaFileName(post.ID, models.MediaTypeVideo)
	}

	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.storageDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("stage media: %w", err)
	}

	return path, nil
}

// Prepare produces the publicly fetchable URL the publish API pulls from.
// Images are watermarked with the destination username first; videos are
// uploaded as-is. On upload failure the staged file stays on disk so a
// later attempt can reuse it.
func (s *mediaService) Prepare(ctx context.Context, post *models.Post, username string) (string, error) {
	data, err := os.ReadFile(post.LocalMediaPath)
	if err != nil {
		return "", fmt.Errorf("read staged media: %w", err)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	if post.MediaType == models.MediaTypeVideo {
		return s.hosting.Upload(ctx, key+".mp4", data, "video/mp4")
	}

	marked, err := Watermark(data, username)
	if err != nil {
		return "", fmt.Errorf("watermark: %w", err)
	}
	return s.hosting.Upload(ctx, key+".png", marked, "image/png")
}

// Cleanup removes the staged file. A file that is already gone counts as
// success; the same post can be deleted from two paths at once.
func (s *mediaService) Cleanup(postID, mediaType string) error {
	path := filepath.Join(s.storageDir, models.MediaFileName(postID, mediaType))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			slog.Info("staged file already deleted", "path", path)
			return nil
		}
		return err
	}
	return nil
}
