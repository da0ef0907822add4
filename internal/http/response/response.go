package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Messages shown instead of the underlying error for codes whose cause should not leak.
var publicMessages = map[string]string{
	apierr.CodeUpstream:         "upstream completion failed",
	apierr.CodeLLMNotConfigured: "OPENAI_API_KEY not set",
	apierr.CodeInternal:         "internal error",
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if pub, ok := publicMessages[code]; ok {
		msg = pub
	} else if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes err using the status and code of the *apierr.Error in its chain.
func RespondAPIError(c *gin.Context, err error) {
	e := apierr.From(err)
	if e == nil {
		e = apierr.New(http.StatusInternalServerError, apierr.CodeInternal, nil)
	}
	_ = c.Error(err)
	RespondError(c, e.Status, e.Code, e)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
