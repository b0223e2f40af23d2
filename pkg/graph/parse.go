package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "iggraph/pkg/errors"
)

var validate = newValidator()

// newValidator reports field names by their JSON tag so schema errors
// point at the wire name rather than the Go field name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseUser parses a user node
func ParseUser(data json.RawMessage) (*User, error) {
	var user User
	if err := decode(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ParseMedia parses a single media node
func ParseMedia(data json.RawMessage) (*Media, error) {
	var media Media
	if err := decode(data, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// ParseMediaList parses one page of a media edge
func ParseMediaList(data json.RawMessage) (*MediaList, error) {
	var list MediaList
	if err := decode(data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// decode unmarshals data into target and validates the result.
// data must hold exactly one JSON value; trailing data is a parsing error.
// Every other failure is reported as a schema error. Keys match struct tags
// case-insensitively, as with encoding/json.
func decode(data json.RawMessage, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(target); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errs.New(errs.ErrorTypeParsing, 0, "unexpected data after JSON value")
	}

	if err := validate.Struct(target); err != nil {
		return validationError(err)
	}

	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		e := errs.Wrap(errs.ErrorTypeSchema, 0,
			fmt.Sprintf("expected %s but got JSON %s", typeErr.Type, typeErr.Value), err)
		e.Field = typeErr.Field
		return e
	}
	return errs.Wrap(errs.ErrorTypeSchema, 0, "unexpected JSON shape", err)
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.Wrap(errs.ErrorTypeSchema, 0, "validation failed", err)
	}

	first := fieldErrs[0]
	e := errs.Wrap(errs.ErrorTypeSchema, 0, describe(first), err)
	e.Field = fieldPath(first.Namespace())
	return e
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "oneof":
		return fmt.Sprintf("value %v is not one of [%s]", fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("value %v must be at least %s", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// fieldPath drops the root struct name from a validator namespace,
// e.g. "MediaList.data[1].id" becomes "data[1].id"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
