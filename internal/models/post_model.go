package models

import "time"

type Post struct {
	ID             string    `db:"post_id" json:"id"`
	MediaType      string    `db:"media_type" json:"media_type"`
	LocalMediaPath string    `db:"local_media_path" json:"local_media_path"`
	Caption        string    `db:"caption" json:"caption"`
	Permalink      string    `db:"permalink" json:"permalink"`
	SourceHashtag  string    `db:"source_hashtag" json:"source_hashtag"`
	HostedMediaURL string    `db:"hosted_media_url" json:"hosted_media_url"`
	DiscoveredDate string    `db:"discovered_date" json:"discovered_date"`
	AuthorUsername string    `db:"author_username" json:"author_username"`
	ParentID       string    `db:"parent_id" json:"parent_id"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	MediaTypeImage         = "IMAGE"
	MediaTypeVideo         = "VIDEO"
	MediaTypeCarouselAlbum = "CAROUSEL_ALBUM"
	MediaTypeCarouselChild = "CAROUSEL_CHILD"
)

const (
	PostStatusFetched = "fetched"
	PostStatusQueued  = "queued"
	PostStatusPosted  = "posted"
	PostStatusDeleted = "deleted"
)

// UnknownAuthor is recorded when the author lookup times out or fails.
const UnknownAuthor = "Unknown"

// DiscoveredDateLayout is the day-month-year display format used for
// DiscoveredDate.
const DiscoveredDateLayout = "02/01/2006"

var statusRank = map[string]int{
	PostStatusFetched: 0,
	PostStatusQueued:  1,
	PostStatusPosted:  2,
	PostStatusDeleted: 2,
}

// CanTransition reports whether a post status may move from one value to
// another. Transitions are forward-only: fetched -> queued -> posted, and
// deleted is reachable from fetched or queued. Posted and deleted are
// terminal.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	if from == PostStatusPosted || from == PostStatusDeleted {
		return false
	}
	if to == PostStatusPosted && from != PostStatusQueued {
		return false
	}
	return toRank > fromRank
}

// MediaFileName is the staged file name for a post, keyed by the post id.
func MediaFileName(postID, mediaType string) string {
	if mediaType == MediaTypeVideo {
		return postID + ".mp4"
	}
	return postID + ".png"
}
