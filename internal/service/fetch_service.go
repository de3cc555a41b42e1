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

// authorLookupTimeout bounds the oEmbed author resolution. Whatever has not
// answered by then resolves to the Unknown sentinel.
const authorLookupTimeout = 5 * time.Second

// FetchService is the ingestion engine: it resolves a hashtag, fetches its
// candidate media, resolves authors, filters self-authored items and
// expands carousels into per-child posts.
type FetchService interface {
	Discover(ctx context.Context, hashtag, kind string) ([]*models.Post, error)
	DiscoverAndStore(ctx context.Context, hashtag, kind string) (int, error)
}

type fetchService struct {
	graph GraphClient
	cr    repository.CredentialsRepository
	pr    repository.PostRepository

	authorTimeout time.Duration
}

func NewFetchService(graph GraphClient, cr repository.CredentialsRepository, pr repository.PostRepository) FetchService {
	return &fetchService{
		graph:         graph,
		cr:            cr,
		pr:            pr,
		authorTimeout: authorLookupTimeout,
	}
}

// Discover returns normalized posts for one hashtag. An unresolvable
// hashtag yields an empty result, not an error; discovery is best-effort
// per hashtag. A media-list API error aborts with no partial result.
func (s *fetchService) Discover(ctx context.Context, hashtag, kind string) ([]*models.Post, error) {
	creds, ok, err := s.cr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no credentials configured")
	}

	edge := FetchKindRecent
	if kind == "top" || kind == FetchKindTop {
		edge = FetchKindTop
	}

	hashtagID, err := s.graph.SearchHashtag(ctx, hashtag, creds.FacebookID, creds.AccessToken)
	if err != nil {
		if errors.Is(err, ErrHashtagNotFound) {
			slog.Info("hashtag not found, skipping", "hashtag", hashtag)
			return []*models.Post{}, nil
		}
		return nil, err
	}

	items, err := s.graph.GetHashtagMedia(ctx, hashtagID, edge, creds.FacebookID, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch #%s: %w", hashtag, err)
	}

	slog.Info("fetched candidate posts", "hashtag", hashtag, "count", len(items))

	discoveredDate := time.Now().Format(models.DiscoveredDateLayout)

	posts := make([]*models.Post, 0, len(items))
	for i := range items {
		item := &items[i]

		author := s.resolveAuthor(ctx, item.Permalink)
		if author == creds.Username {
			continue
		}

		if item.MediaType == models.MediaTypeCarouselAlbum {
			if item.Children == nil {
				continue
			}
			for _, child := range item.Children.Data {
				if child.ID == "" || child.MediaURL == "" {
					continue
				}
				posts = append(posts, &models.Post{
					ID:             child.ID,
					MediaType:      child.MediaType,
					Caption:        item.Caption,
					Permalink:      item.Permalink,
					SourceHashtag:  hashtag,
					HostedMediaURL: child.MediaURL,
					DiscoveredDate: discoveredDate,
					AuthorUsername: author,
					ParentID:       item.ID,
					Status:         models.PostStatusFetched,
				})
			}
			continue
		}

		posts = append(posts, &models.Post{
			ID:             item.ID,
			MediaType:      item.MediaType,
			Caption:        item.Caption,
			Permalink:      item.Permalink,
			SourceHashtag:  hashtag,
			HostedMediaURL: item.MediaURL,
			DiscoveredDate: discoveredDate,
			AuthorUsername: author,
			Status:         models.PostStatusFetched,
		})
	}

	return posts, nil
}

// DiscoverAndStore upserts discovered posts and reports how many were
// emitted.
func (s *fetchService) DiscoverAndStore(ctx context.Context, hashtag, kind string) (int, error) {
	posts, err := s.Discover(ctx, hashtag, kind)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0, nil
	}
	if err := s.pr.Upsert(ctx, posts); err != nil {
		return 0, err
	}
	return len(posts), nil
}

// resolveAuthor races the oEmbed lookup against the bounded timeout. The
// network result wins on a tie; anything slower or failing resolves to
// Unknown. This bounds latency per item, it does not guarantee a name.
func (s *fetchService) resolveAuthor(ctx context.Context, permalink string) string {
	lookupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	resolved := make(chan string, 1)
	go func() {
		name, err := s.graph.GetAuthorName(lookupCtx, permalink)
		if err != nil {
			return
		}
		resolved <- name
	}()

	timer := time.NewTimer(s.authorTimeout)
	defer timer.Stop()

	select {
	case name := <-resolved:
		return name
	case <-timer.C:
		select {
		case name := <-resolved:
			return name
		default:
			return models.UnknownAuthor
		}
	}
}
