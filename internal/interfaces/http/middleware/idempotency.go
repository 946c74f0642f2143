package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/cache"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets clients retry a write without repeating it
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from the idempotency store
	IdempotentReplayHeader = "Idempotent-Replayed"

	defaultIdempotencyTTL = 24 * time.Hour
	maxIdempotencyKeyLen  = 128
)

// captureWriter keeps a copy of the response body
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key. Keys are scoped to the caller and route. Requests without
// the header pass through. Server errors release the key so the client can retry.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		scoped := scopeKey(c, key)
		ctx := c.Request.Context()

		stored, found, err := store.Lookup(ctx, scoped)
		if err != nil {
			log.Warn("Idempotency lookup failed, processing request without it", zap.Error(err))
			c.Next()
			return
		}
		if found {
			replay(c, stored)
			return
		}

		reserved, err := store.Reserve(ctx, scoped, ttl)
		if err != nil {
			log.Warn("Idempotency reserve failed, processing request without it", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			// lost the race to a concurrent request with the same key
			stored, _, _ = store.Lookup(ctx, scoped)
			replay(c, stored)
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
			return
		}
		resp := cache.Response{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := store.Complete(ctx, scoped, resp, ttl); err != nil {
			log.Warn("Failed to store idempotent response", zap.Error(err))
		}
	}
}

func scopeKey(c *gin.Context, key string) string {
	caller := "anonymous"
	if id, ok := GetIdentity(c); ok {
		caller = id.ID.String()
	}
	return caller + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
}

// replay writes a stored response, or a conflict while the first request is still running
func replay(c *gin.Context, stored *cache.Response) {
	if stored == nil {
		c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
			dto.ErrCodeIdempotencyBusy,
			"A request with this Idempotency-Key is still being processed",
			GetRequestID(c),
		))
		return
	}
	c.Header(IdempotentReplayHeader, "true")
	c.Data(stored.Status, stored.ContentType, stored.Body)
	c.Abort()
}
