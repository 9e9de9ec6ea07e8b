package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"brainshift/internal/models"
	"brainshift/internal/repository"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// bodies larger than this are left out of the recorded action
const maxAuditBody = 2000

// AuditMiddleware records every mutating request of an authenticated user.
// Path and action are stored encrypted only.
func AuditMiddleware(repo *repository.AuditRepository, cipher *util.Cipher, log hclog.Logger) gin.HandlerFunc {
	log = log.Named("audit")
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < maxAuditBody {
			action += " " + string(bodyBytes)
		}

		encPath, err := cipher.EncryptString(path)
		if err != nil {
			log.Error("encrypt audit path", "error", err)
			return
		}
		encAction, err := cipher.EncryptString(action)
		if err != nil {
			log.Error("encrypt audit action", "error", err)
			return
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			PathEnc:   encPath,
			ActionEnc: encAction,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		// the request context may already be cancelled by now
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Create(ctx, &entry); err != nil {
			log.Warn("audit log not stored", "user_id", userID, "error", err)
		}
	}
}
