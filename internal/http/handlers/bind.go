package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/platform/apierr"
)

var errNotObject = errors.New("request body must be a JSON object")

// bindObject decodes the request body into dst. An empty body leaves dst untouched, so
// every field keeps its default. Bodies not labelled application/json are skipped
// unread and treated the same way.
func bindObject(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	if !strings.EqualFold(c.ContentType(), gin.MIMEJSON) {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierr.New(http.StatusRequestEntityTooLarge, apierr.CodeInvalidRequest,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return apierr.InvalidRequest(fmt.Errorf("read body: %w", err))
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] != '{' {
		return apierr.InvalidRequest(errNotObject)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apierr.InvalidRequest(fmt.Errorf("invalid JSON body: %w", err))
	}
	return nil
}
