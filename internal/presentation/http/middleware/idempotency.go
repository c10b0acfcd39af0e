package middleware

import (
	"bytes"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyReplayedHeader marks a response served from a stored key
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// inflight tracks keys whose first request is still being processed
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (f *inflight) acquire(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[id]; busy {
		return false
	}
	f.keys[id] = struct{}{}
	return true
}

func (f *inflight) release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, id)
}

// IdempotencyRequired requires an Idempotency-Key on POST requests. The first
// successful response for a key is stored per session and replayed for every
// retry, so a double-submitted request is processed once.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	running := &inflight{keys: make(map[string]struct{})}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		sess := GetSession(c)
		if sess == nil {
			response.Unauthorized(c, "Session required")
			c.Abort()
			return
		}
		subject := sess.Subject()
		ctx := c.Request.Context()

		lockID := subject + "\x00" + idempotencyKey
		if !running.acquire(lockID) {
			response.Fail(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
			c.Abort()
			return
		}
		defer running.release(lockID)

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, subject)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to check idempotency key")
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}
		if existing != nil {
			// expired keys still hold the unique index
			if err := config.Repo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: failed to purge expired idempotency keys: %v", err)
			}
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only store successful responses so failed requests can be retried
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				Subject:      subject,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().UTC().Add(IdempotencyKeyTTL),
			}

			if err := config.Repo.Create(ctx, ikey); err != nil {
				log.Printf("Warning: failed to store idempotency key %s: %v", idempotencyKey, err)
			}
		}
	}
}
