package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/pkg/response"
)

const (
	ctxIdentity = "identity"
	ctxToken    = "session_token"

	LoginPath = "/auth"
	HomePath  = "/"
)

// RequireAdmin guards every admin route with the same decision used at login.
func RequireAdmin(flow *Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		sess, err := flow.Verify(c.Request.Context(), token)
		if err != nil {
			abortWith(c, flow.log, err)
			return
		}

		c.Set(ctxIdentity, sess.Identity)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// BearerToken reads the Authorization header, falling back to ?token= for websocket clients.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}

func IdentityFrom(c *gin.Context) (backend.Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return backend.Identity{}, false
	}
	id, ok := v.(backend.Identity)
	return id, ok
}

func abortWith(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, backend.ErrNoSession):
		response.Redirect(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Please sign in", LoginPath)
	case errors.Is(err, ErrAccessDenied):
		response.Redirect(c, http.StatusForbidden, "ACCESS_DENIED", "You don't have admin privileges", HomePath)
	default:
		log.Warn("admin verification failed", zap.Error(err))
		response.Redirect(c, http.StatusServiceUnavailable, "VERIFICATION_FAILED", "Admin verification failed, please try again", LoginPath)
	}
	c.Abort()
}
