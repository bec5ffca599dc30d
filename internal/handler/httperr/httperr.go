package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	// ReturnTo tells the client where to resume after re-authenticating.
	ReturnTo string `json:"return_to,omitempty"`
	Detail   any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortUnauthorized responds 401 with the current path echoed back so the
// client can return to the interrupted step after logging in again.
func AbortUnauthorized(c *gin.Context, err error, msg string) {
	resp := Response{Status: http.StatusUnauthorized}
	resp.Error.Message = msg
	resp.ReturnTo = c.Request.URL.RequestURI()

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}
