package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/edenzconsultants/portal-api/internal/common"
)

const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's request id or mints a ULID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			if generated, err := common.NewULID(); err == nil {
				id = generated
			}
		}
		if id != "" {
			c.Writer.Header().Set(RequestIDHeader, id)
		}
		c.Next()
	}
}
