package graph

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout the Graph API uses for media timestamps
const TimestampLayout = "2006-01-02T15:04:05-0700"

// MediaType identifies the kind of a media object
type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

// User represents an Instagram user node
type User struct {
	ID                string `json:"id" yaml:"id" validate:"required"`
	Username          string `json:"username" yaml:"username" validate:"required"`
	AccountType       string `json:"account_type,omitempty" yaml:"account_type,omitempty"`
	MediaCount        int    `json:"media_count,omitempty" yaml:"media_count,omitempty" validate:"gte=0"`
	Name              string `json:"name,omitempty" yaml:"name,omitempty"`
	Biography         string `json:"biography,omitempty" yaml:"biography,omitempty"`
	Website           string `json:"website,omitempty" yaml:"website,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" yaml:"profile_picture_url,omitempty"`
	FollowersCount    int    `json:"followers_count,omitempty" yaml:"followers_count,omitempty" validate:"gte=0"`
	FollowsCount      int    `json:"follows_count,omitempty" yaml:"follows_count,omitempty" validate:"gte=0"`
}

// Media represents a single Instagram media object
type Media struct {
	ID            string         `json:"id" yaml:"id" validate:"required"`
	Caption       string         `json:"caption,omitempty" yaml:"caption,omitempty"`
	MediaType     MediaType      `json:"media_type,omitempty" yaml:"media_type,omitempty" validate:"omitempty,oneof=IMAGE VIDEO CAROUSEL_ALBUM"`
	MediaURL      string         `json:"media_url,omitempty" yaml:"media_url,omitempty"`
	Permalink     string         `json:"permalink,omitempty" yaml:"permalink,omitempty"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Username      string         `json:"username,omitempty" yaml:"username,omitempty"`
	LikeCount     int            `json:"like_count,omitempty" yaml:"like_count,omitempty" validate:"gte=0"`
	CommentsCount int            `json:"comments_count,omitempty" yaml:"comments_count,omitempty" validate:"gte=0"`
	Children      *MediaChildren `json:"children,omitempty" yaml:"children,omitempty"`
}

// MediaChildren holds the items of a carousel album
type MediaChildren struct {
	Data []Media `json:"data" yaml:"data" validate:"dive"`
}

// MediaList is a single page of a user's media edge
type MediaList struct {
	Data   []Media `json:"data" yaml:"data" validate:"required,dive"`
	Paging *Paging `json:"paging,omitempty" yaml:"paging,omitempty"`
}

// Paging carries the cursors returned with a page
type Paging struct {
	Cursors  Cursors `json:"cursors" yaml:"cursors"`
	Previous string  `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next     string  `json:"next,omitempty" yaml:"next,omitempty"`
}

// Cursors are opaque page markers
type Cursors struct {
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
	After  string `json:"after,omitempty" yaml:"after,omitempty"`
}

// IsVideo reports whether the media is a video
func (m *Media) IsVideo() bool {
	return m.MediaType == MediaTypeVideo
}

// IsCarousel reports whether the media is a carousel album
func (m *Media) IsCarousel() bool {
	return m.MediaType == MediaTypeCarousel
}

// TakenAt parses the media timestamp
func (m *Media) TakenAt() (time.Time, error) {
	if m.Timestamp == "" {
		return time.Time{}, fmt.Errorf("media %s has no timestamp", m.ID)
	}
	t, err := time.Parse(TimestampLayout, m.Timestamp)
	if err != nil {
		// Some endpoints return RFC3339 instead
		if t2, err2 := time.Parse(time.RFC3339, m.Timestamp); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", m.Timestamp, err)
	}
	return t, nil
}

// IDs returns the media IDs in page order
func (l *MediaList) IDs() []string {
	ids := make([]string, 0, len(l.Data))
	for _, m := range l.Data {
		ids = append(ids, m.ID)
	}
	return ids
}

// Len returns the number of items in the page
func (l *MediaList) Len() int {
	return len(l.Data)
}

// NextCursor returns the cursor for the following page, if any.
// An empty Next link means the API reported no further page.
func (l *MediaList) NextCursor() (string, bool) {
	if l.Paging == nil || l.Paging.Next == "" || l.Paging.Cursors.After == "" {
		return "", false
	}
	return l.Paging.Cursors.After, true
}
