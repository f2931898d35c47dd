package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authsvc "poolbnb/internal/app/services/auth"
	domainauth "poolbnb/internal/domain/auth"
	domainuser "poolbnb/internal/domain/user"
)

const principalContextKey = "poolbnb.principal"

// principal is the authenticated user threaded explicitly through
// handlers; it is resolved once per request from the bearer token.
type principal struct {
	ID        domainuser.ID
	Email     string
	FullName  string
	Bio       string
	Avatar    string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AuthMiddleware struct {
	Service *authsvc.Service
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Service == nil {
		c.Next()
		return
	}
	u, err := m.Service.ResolveToken(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, domainauth.ErrSessionNotFound) && m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	setPrincipal(c, principal{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Profile.Bio,
		Avatar:    u.Profile.Avatar,
		Token:     token,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

// requireSession responds 401 and aborts when no session resolved.
func requireSession(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
