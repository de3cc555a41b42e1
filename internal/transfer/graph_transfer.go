package transfer

// HashtagSearchResponse is the payload of GET /ig_hashtag_search.
type HashtagSearchResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Error *GraphError `json:"error,omitempty"`
}

// HashtagMediaResponse is the payload of GET /{hashtag-id}/{recent_media|top_media}.
type HashtagMediaResponse struct {
	Data  []HashtagMediaItem `json:"data"`
	Error *GraphError        `json:"error,omitempty"`
}

type HashtagMediaItem struct {
	ID        string            `json:"id"`
	MediaType string            `json:"media_type"`
	MediaURL  string            `json:"media_url"`
	Caption   string            `json:"caption"`
	Permalink string            `json:"permalink"`
	Children  *CarouselChildren `json:"children,omitempty"`
}

type CarouselChildren struct {
	Data []CarouselChild `json:"data"`
}

type CarouselChild struct {
	ID        string `json:"id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
}

type GraphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// OembedResponse is the payload of the oEmbed author lookup.
type OembedResponse struct {
	AuthorName string `json:"author_name"`
}
