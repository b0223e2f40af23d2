package instagram

// APIError is the error object the Graph API returns with non-2xx responses
type APIError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	IsTransient  bool   `json:"is_transient"`
	FBTraceID    string `json:"fbtrace_id"`
}

// errorEnvelope wraps APIError in an error response body
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// MediaListOptions selects a single page of a media edge
type MediaListOptions struct {
	// Limit is the page size; zero uses the client default
	Limit int
	// After requests the page following this cursor
	After string
	// Before requests the page preceding this cursor
	Before string
	// Fields overrides the client's media fields
	Fields []string
}
