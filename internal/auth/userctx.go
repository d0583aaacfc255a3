package auth

import (
	"net/http"
	"strings"

	"github.com/fablecraft/fablecraft-backend/internal/users"
	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
)

// WithUser resolves the caller to a database user and stores both ids on the
// context. The Firebase middleware, when enabled, has already set
// firebase_uid; otherwise the X-User-Id header is trusted, with a demo
// fallback for local development.
func WithUser(userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetString(CtxFirebaseUID))
		if fuid == "" {
			fuid = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if fuid == "" {
			fuid = "demo-user"
		}

		uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetHeader("X-User-Email"),
			DisplayName: c.GetHeader("X-User-Name"),
			PhotoURL:    c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}

func UserDBID(c *gin.Context) string {
	v := c.GetString(CtxUserDBID)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
