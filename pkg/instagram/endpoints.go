package instagram

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the Instagram Graph API host
	BaseURL = "https://graph.instagram.com"

	// MeID addresses the user that owns the access token
	MeID = "me"

	// DefaultMediaLimit is the default number of media items per page
	DefaultMediaLimit = 25

	// MaxMediaLimit is the largest page size the API accepts
	MaxMediaLimit = 100
)

// DefaultUserFields are requested when no user fields are configured
var DefaultUserFields = []string{"id", "username", "account_type", "media_count"}

// DefaultMediaFields are requested when no media fields are configured
var DefaultMediaFields = []string{
	"id", "caption", "media_type", "media_url", "permalink",
	"thumbnail_url", "timestamp", "username",
}

// Endpoint builds Graph API URLs for one host and API version
type Endpoint struct {
	BaseURL    string
	APIVersion string
}

// URL joins path segments onto the base URL and encodes params
func (e Endpoint) URL(params url.Values, segments ...string) string {
	base := strings.TrimRight(e.BaseURL, "/")
	if base == "" {
		base = BaseURL
	}

	parts := []string{base}
	if e.APIVersion != "" {
		parts = append(parts, e.APIVersion)
	}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}

	u := strings.Join(parts, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// UserURL constructs the URL for a user node
func (e Endpoint) UserURL(userID string, fields []string) string {
	return e.URL(fieldParams(fields, DefaultUserFields), userID)
}

// MediaURL constructs the URL for a single media node
func (e Endpoint) MediaURL(mediaID string, fields []string) string {
	return e.URL(fieldParams(fields, DefaultMediaFields), mediaID)
}

// MediaListURL constructs the URL for one page of a user's media edge
func (e Endpoint) MediaListURL(userID string, opts MediaListOptions) string {
	params := fieldParams(opts.Fields, DefaultMediaFields)
	params.Set("limit", strconv.Itoa(ClampLimit(opts.Limit)))

	// The API rejects requests carrying both cursors
	if opts.After != "" {
		params.Set("after", opts.After)
	} else if opts.Before != "" {
		params.Set("before", opts.Before)
	}

	return e.URL(params, userID, "media")
}

// ClampLimit keeps a page size within the accepted range
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultMediaLimit
	}
	if limit > MaxMediaLimit {
		return MaxMediaLimit
	}
	return limit
}

func fieldParams(fields, defaults []string) url.Values {
	if len(fields) == 0 {
		fields = defaults
	}
	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	return params
}

// IsValidUserID checks that id is "me" or a numeric node ID
func IsValidUserID(id string) bool {
	if id == MeID {
		return true
	}
	return isNumeric(id)
}

// IsValidMediaID checks that id is a numeric node ID
func IsValidMediaID(id string) bool {
	return isNumeric(id)
}

func isNumeric(s string) bool {
	if s == "" || len(s) > 32 {
		return false
	}
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// redactURL masks the access token in a URL for logging
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("access_token") == "" {
		return raw
	}
	q.Set("access_token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
