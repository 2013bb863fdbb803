package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// RequestIDHeader is the request id header read from and written to clients.
const RequestIDHeader = "X-Request-Id"

const requestIDContextKey = "request_id"

// RequestID accepts an inbound X-Request-Id or generates one, echoes it on
// the response, and threads it through both the gin context and the request
// context so error envelopes can report it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Set(requestIDContextKey, requestID)
		c.Request = c.Request.WithContext(
			apperrors.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// RequestIDFromContext returns the request id for the current request, or ""
// when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
