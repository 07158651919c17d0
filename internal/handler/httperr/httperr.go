package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error body every endpoint returns. Reason carries
// the machine-readable coupon rejection value when one applies.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// AbortWithError records the original error on the gin context for the
// logging middleware and writes the public response body.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
