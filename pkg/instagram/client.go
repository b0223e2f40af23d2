package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"iggraph/pkg/config"
	errs "iggraph/pkg/errors"
	"iggraph/pkg/logger"
	"iggraph/pkg/ratelimit"
	"iggraph/pkg/response"
)

// Graph API error codes that signal throttling or an invalid token
const (
	graphCodeTooManyCalls     = 4
	graphCodeUserRequestLimit = 17
	graphCodeAPIUnavailable   = 32
	graphCodeRateLimited      = 613
	graphCodeInvalidToken     = 190
)

// Client is an Instagram Graph API client returning typed responses
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	endpoint    Endpoint
	accessToken string
	userFields  []string
	mediaFields []string
	pageSize    int
	limiter     ratelimit.Limiter
	logger      logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter replaces the request rate limiter
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a Graph API client from configuration
func NewClient(cfg *config.Config, log logger.Logger, opts ...Option) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Graph.Timeout,
		},
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "iggraph/1.0",
		},
		endpoint: Endpoint{
			BaseURL:    cfg.Graph.BaseURL,
			APIVersion: cfg.Graph.APIVersion,
		},
		accessToken: cfg.Graph.AccessToken,
		userFields:  cfg.Graph.UserFields,
		mediaFields: cfg.Graph.MediaFields,
		pageSize:    cfg.Graph.PageSize,
		limiter:     ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize),
		logger:      log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetAccessToken replaces the token sent with every request
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// Endpoint returns the URL builder used by the client
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// GetUser fetches a user node. userID may be "me".
func (c *Client) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	if !IsValidUserID(userID) {
		return nil, errs.New(errs.ErrorTypeTransport, 0, fmt.Sprintf("invalid user id %q", userID))
	}

	raw, err := c.get(ctx, c.endpoint.UserURL(userID, c.userFields))
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch user", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	resp, err := response.NewUserResponse(raw)
	if err != nil {
		c.logParseFailure("user", raw, err)
		return nil, err
	}

	c.logger.DebugWithFields("fetched user", map[string]interface{}{
		"user_id":  resp.Body.ID,
		"username": resp.Body.Username,
	})
	return resp, nil
}

// GetMediaList fetches one page of a user's media
func (c *Client) GetMediaList(ctx context.Context, userID string, opts MediaListOptions) (*response.MediaListResponse, error) {
	if !IsValidUserID(userID) {
		return nil, errs.New(errs.ErrorTypeTransport, 0, fmt.Sprintf("invalid user id %q", userID))
	}
	if opts.Limit == 0 {
		opts.Limit = c.pageSize
	}
	if len(opts.Fields) == 0 {
		opts.Fields = c.mediaFields
	}

	raw, err := c.get(ctx, c.endpoint.MediaListURL(userID, opts))
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch media list", map[string]interface{}{
			"user_id": userID,
			"after":   opts.After,
			"error":   err.Error(),
		})
		return nil, err
	}

	resp, err := response.NewMediaListResponse(raw)
	if err != nil {
		c.logParseFailure("media list", raw, err)
		return nil, err
	}

	c.logger.DebugWithFields("fetched media list", map[string]interface{}{
		"user_id": userID,
		"count":   resp.Body.Len(),
	})
	return resp, nil
}

// GetMedia fetches a single media node
func (c *Client) GetMedia(ctx context.Context, mediaID string) (*response.MediaResponse, error) {
	if !IsValidMediaID(mediaID) {
		return nil, errs.New(errs.ErrorTypeTransport, 0, fmt.Sprintf("invalid media id %q", mediaID))
	}

	raw, err := c.get(ctx, c.endpoint.MediaURL(mediaID, c.mediaFields))
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch media", map[string]interface{}{
			"media_id": mediaID,
			"error":    err.Error(),
		})
		return nil, err
	}

	resp, err := response.NewMediaResponse(raw)
	if err != nil {
		c.logParseFailure("media", raw, err)
		return nil, err
	}
	return resp, nil
}

// get performs a rate-limited GET and returns the buffered response
func (c *Client) get(ctx context.Context, rawURL string) (*response.RawResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeTransport, 0, "rate limiter wait aborted", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeUnknown, 0, "failed to create request", err)
	}

	if c.accessToken != "" {
		q := req.URL.Query()
		q.Set("access_token", c.accessToken)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	raw, err := response.FromHTTP(resp)
	if err != nil {
		return nil, err
	}

	if err := c.checkResponseStatus(raw, req); err != nil {
		return nil, err
	}
	return raw, nil
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	safeURL := redactURL(req.URL.String())
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method":     req.Method,
		"url":        safeURL,
		"request_id": requestID,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		// url.Error carries the full request URL, token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactURL(urlErr.URL)
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":     req.Method,
			"url":        safeURL,
			"request_id": requestID,
			"error":      err.Error(),
			"duration":   duration,
		})
		return nil, errs.Wrap(errs.ErrorTypeNetwork, 0, "request failed", err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":     req.Method,
		"url":        safeURL,
		"request_id": requestID,
		"status":     resp.StatusCode,
		"duration":   duration,
	})

	return resp, nil
}

// checkResponseStatus turns a non-2xx response into a typed error,
// preferring the message carried in the Graph API error envelope
func (c *Client) checkResponseStatus(raw *response.RawResponse, req *http.Request) error {
	errorType := errs.TypeForStatus(raw.StatusCode)
	if errorType == "" {
		return nil
	}

	message := http.StatusText(raw.StatusCode)
	if message == "" {
		message = fmt.Sprintf("unexpected status code: %d", raw.StatusCode)
	}

	fields := map[string]interface{}{
		"status": raw.StatusCode,
		"url":    redactURL(req.URL.String()),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw.Body, &envelope); err == nil && envelope.Error != nil {
		apiErr := envelope.Error
		if apiErr.Message != "" {
			message = apiErr.Message
		}
		switch apiErr.Code {
		case graphCodeTooManyCalls, graphCodeUserRequestLimit, graphCodeAPIUnavailable, graphCodeRateLimited:
			errorType = errs.ErrorTypeRateLimit
		case graphCodeInvalidToken:
			errorType = errs.ErrorTypeAuth
		}
		fields["graph_code"] = apiErr.Code
		fields["graph_type"] = apiErr.Type
		fields["fbtrace_id"] = apiErr.FBTraceID
	}

	if errorType == errs.ErrorTypeServerError {
		c.logger.ErrorWithFields("Graph API server error", fields)
	} else {
		c.logger.WarnWithFields("Graph API error", fields)
	}

	return errs.New(errorType, raw.StatusCode, message)
}

func (c *Client) logParseFailure(kind string, raw *response.RawResponse, err error) {
	bodyPreview := string(raw.Body)
	if len(bodyPreview) > 200 {
		bodyPreview = bodyPreview[:200] + "..."
	}
	c.logger.ErrorWithFields("failed to parse "+kind+" response", map[string]interface{}{
		"status":       raw.StatusCode,
		"error_type":   string(errs.TypeOf(err)),
		"error":        err.Error(),
		"body_preview": bodyPreview,
	})
}
