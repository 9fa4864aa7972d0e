package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies why a data source could not produce a value.
type ErrorKind string

const (
	KindConfig    ErrorKind = "config"
	KindRemoteAPI ErrorKind = "remote_api"
	KindDiskQuery ErrorKind = "disk_query"
	KindTimeout   ErrorKind = "timeout"
	KindInternal  ErrorKind = "internal"
)

// SourceError is the failure half of a Result. Message and Details are what
// the dashboard client sees; Status is set for upstream HTTP failures only.
type SourceError struct {
	Kind    ErrorKind
	Message string
	Details string
	Status  int
	Err     error
}

func (e *SourceError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ErrorBody is the wire form of a SourceError.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Body returns the {error, details} payload for the client.
func (e *SourceError) Body() ErrorBody {
	return ErrorBody{Error: e.Message, Details: e.Details}
}

// ConfigError reports required configuration that is absent.
func ConfigError(message, details string) *SourceError {
	return &SourceError{Kind: KindConfig, Message: message, Details: details}
}

// RemoteAPIError reports a non-2xx answer from an upstream API. The raw
// response body becomes the details.
func RemoteAPIError(source string, status int, body string) *SourceError {
	return &SourceError{
		Kind:    KindRemoteAPI,
		Message: fmt.Sprintf("%s API responded with status %d", source, status),
		Details: body,
		Status:  status,
	}
}

// DiskQueryError reports a failed or unparseable disk usage query.
func DiskQueryError(err error) *SourceError {
	return &SourceError{
		Kind:    KindDiskQuery,
		Message: "Failed to query disk usage",
		Details: err.Error(),
		Err:     err,
	}
}

// TimeoutError reports a source that did not answer within its bound, or
// whose request was abandoned.
func TimeoutError(source string, err error) *SourceError {
	return &SourceError{
		Kind:    KindTimeout,
		Message: source + " request timed out",
		Details: err.Error(),
		Err:     err,
	}
}

// InternalError reports anything unexpected.
func InternalError(source string, err error) *SourceError {
	return &SourceError{
		Kind:    KindInternal,
		Message: "Failed to fetch " + source,
		Details: err.Error(),
		Err:     err,
	}
}

// Result holds exactly one of a value or an error.
type Result[T any] struct {
	value T
	err   *SourceError
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps an error. A nil error is treated as an internal failure so a
// Result can never be empty.
func Fail[T any](err *SourceError) Result[T] {
	if err == nil {
		err = InternalError("source", errors.New("nil error"))
	}
	return Result[T]{err: err}
}

// Value returns the value and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *SourceError {
	return r.err
}

// MarshalJSON writes the value on success and {error, details} otherwise.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(r.err.Body())
	}
	return json.Marshal(r.value)
}
