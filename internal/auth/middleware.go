package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/apperr"
	"reviewhub/pkg/models"
)

const ctxUserKey = "auth_user"

// AuthMiddleware resolves the bearer credential to an existing user and
// fails closed: missing header, bad token, or a token whose subject no
// longer exists all abort before any handler runs.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			apperr.Abort(c, apperr.Authentication())
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			apperr.Abort(c, apperr.Authentication())
			return
		}

		// the token may outlive the account; verify the subject still exists
		u, err := repo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			apperr.Abort(c, apperr.Authentication())
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the identity attached by AuthMiddleware, or nil on
// an unprotected path.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
