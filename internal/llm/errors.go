package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned without any network call when no credential is configured.
var ErrMissingAPIKey = errors.New("llm: api key not configured")

type HTTPError struct {
	Model      string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: model=%s status=%d", e.Model, e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: model=%s status=%d body=%s", e.Model, e.StatusCode, e.Body)
}

// HTTPStatusCode exposes the upstream status to callers that only know the interface.
func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}
