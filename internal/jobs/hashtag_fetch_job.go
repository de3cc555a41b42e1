package job

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/repostflow/internal/repository"
	"github.com/maheshrc27/repostflow/internal/service"
)

type HashtagFetchJob struct {
	hr repository.HashtagRepository
	gc repository.GeneralConfigRepository
	fs service.FetchService
}

func NewHashtagFetchJob(
	hr repository.HashtagRepository,
	gc repository.GeneralConfigRepository,
	fs service.FetchService) *HashtagFetchJob {
	return &HashtagFetchJob{
		hr: hr,
		gc: gc,
		fs: fs,
	}
}

// FetchHashtags discovers recent and top media for every tracked hashtag.
// A failing hashtag is logged and skipped; the job itself never fails.
func (j *HashtagFetchJob) FetchHashtags() {
	ctx := context.Background()

	cfg, ok, err := j.gc.Get(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if !ok || !cfg.HashtagFetchingEnabled {
		return
	}

	hashtags, err := j.hr.List(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, hashtag := range hashtags {
		for _, kind := range []string{"recent", "top"} {
			count, err := j.fs.DiscoverAndStore(ctx, hashtag.Name, kind)
			if err != nil {
				slog.Error("hashtag fetch failed", "hashtag", hashtag.Name, "kind", kind, "error", err)
				continue
			}
			slog.Info("hashtag fetch complete", "hashtag", hashtag.Name, "kind", kind, "count", count)
		}
	}
}
