package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	errs "iggraph/pkg/errors"
)

// RawResponse is a fully buffered HTTP response as produced by the transport
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FromHTTP buffers and closes the body of resp
func FromHTTP(resp *http.Response) (*RawResponse, error) {
	if resp == nil {
		return nil, errs.New(errs.ErrorTypeTransport, 0, "no response")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNetwork, resp.StatusCode, "failed to read response body", err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

// Parser turns a JSON document into a domain object
type Parser[T any] func(data json.RawMessage) (T, error)

// Response is a raw response whose body has been parsed into T
type Response[T any] struct {
	Body T

	StatusCode int
	Header     http.Header
}

// New parses raw's body with parse.
//
// The body must be valid JSON, otherwise a parsing error is returned. Errors
// reported by parse, and a nil body, are returned as schema errors. No
// Response is returned alongside an error.
func New[T any](raw *RawResponse, parse Parser[T]) (*Response[T], error) {
	if raw == nil {
		return nil, errs.New(errs.ErrorTypeTransport, 0, "no response")
	}
	if parse == nil {
		return nil, errs.New(errs.ErrorTypeUnknown, raw.StatusCode, "no parser")
	}

	if !json.Valid(raw.Body) {
		return nil, errs.New(errs.ErrorTypeParsing, raw.StatusCode,
			fmt.Sprintf("response body is not valid JSON: %s", preview(raw.Body)))
	}

	body, err := parse(json.RawMessage(raw.Body))
	if err != nil {
		return nil, schemaError(raw.StatusCode, err)
	}
	if isNil(body) {
		return nil, errs.New(errs.ErrorTypeSchema, raw.StatusCode, "parser returned no body")
	}

	return &Response[T]{
		Body:       body,
		StatusCode: raw.StatusCode,
		Header:     raw.Header,
	}, nil
}

// schemaError stamps parser failures with the schema type and the status code
func schemaError(statusCode int, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		out := *e
		out.Type = errs.ErrorTypeSchema
		out.Code = statusCode
		return &out
	}
	return errs.Wrap(errs.ErrorTypeSchema, statusCode, "response body does not match the expected shape", err)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// preview shortens a body for error messages
func preview(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
