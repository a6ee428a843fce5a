package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextKeyRequestID is the Gin context key for the request ID.
	ContextKeyRequestID = "request_id"
	// HeaderRequestID carries the request ID in both directions.
	HeaderRequestID = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an ID. A caller-supplied
// X-Request-ID is kept only when it is a UUID, in canonical form; anything
// else is replaced so arbitrary client text never reaches the logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := sanitizeRequestID(c.GetHeader(HeaderRequestID))
		c.Set(ContextKeyRequestID, reqID)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}

// RequestID returns the ID assigned by RequestIDMiddleware, or "" if the
// middleware did not run.
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func sanitizeRequestID(raw string) string {
	// uuid.Parse also accepts the urn:uuid: and braced forms, at most 45 bytes.
	if raw != "" && len(raw) <= 45 {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
	}
	return uuid.New().String()
}
