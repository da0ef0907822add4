package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes returned in the error envelope.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeUpstream         = "upstream_error"
	CodeLLMNotConfigured = "llm_not_configured"
	CodeRateLimited      = "rate_limited"
	CodeInternal         = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidRequest(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, err)
}

func Upstream(err error) *Error {
	return New(http.StatusBadGateway, CodeUpstream, err)
}

func NotConfigured(err error) *Error {
	return New(http.StatusInternalServerError, CodeLLMNotConfigured, err)
}

// From unwraps err into an *Error, mapping anything untyped to a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(http.StatusInternalServerError, CodeInternal, err)
}
