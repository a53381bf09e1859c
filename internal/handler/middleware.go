package handler

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

var (
	ErrMissingCredentials = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid authentication token")
)

// BearerAuth rejects requests whose bearer token does not match the one
// returned by expected. A lookup error means the server is misconfigured.
func BearerAuth(expected func() (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		want, err := expected()
		if err != nil {
			slog.Error("bearer token unavailable", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		got, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil && subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			err = ErrInvalidToken
		}
		if err != nil {
			slog.Warn("rejected agent request", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrMissingCredentials
	}
	return token, nil
}

// RequestID tags each request with the caller's X-Request-ID or a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
