package response

import "iggraph/pkg/graph"

type (
	UserResponse      = Response[*graph.User]
	MediaResponse     = Response[*graph.Media]
	MediaListResponse = Response[*graph.MediaList]
)

// NewUserResponse parses a user lookup response
func NewUserResponse(raw *RawResponse) (*UserResponse, error) {
	return New[*graph.User](raw, graph.ParseUser)
}

// NewMediaResponse parses a single media lookup response
func NewMediaResponse(raw *RawResponse) (*MediaResponse, error) {
	return New[*graph.Media](raw, graph.ParseMedia)
}

// NewMediaListResponse parses a media edge page
func NewMediaListResponse(raw *RawResponse) (*MediaListResponse, error) {
	return New[*graph.MediaList](raw, graph.ParseMediaList)
}
