package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"medkb/config"
)

const userContextKey = "sessionUser"

// SessionUser is the identity carried by a verified session token. The
// token itself is issued by the login service; this core only consumes it.
type SessionUser struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type sessionClaims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// sessionMiddleware verifies the session token when one is present and
// stashes the user on the request. Requests without a token, or with a
// stale or forged one, stay anonymous; the role gate decides later
// whether that is acceptable, so public reads keep working with an
// expired cookie.
func sessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cfg.SessionCookie)
		if tokenString == "" {
			c.Next()
			return
		}
		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SessionSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}
		c.Set(userContextKey, &SessionUser{
			ID:    claims.Subject,
			Role:  claims.Role,
			Name:  claims.Name,
			Email: claims.Email,
		})
		c.Next()
	}
}

func currentUser(c *gin.Context) (*SessionUser, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*SessionUser)
	return user, ok
}

// requireRole gates a route group on an authenticated session with one of
// the given roles. Rejection happens before any handler work.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "code": CodeForbidden})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role", "code": CodeForbidden})
	}
}

// requireEditor restricts mutations to admins and editors.
func requireEditor() gin.HandlerFunc {
	return requireRole("admin", "editor")
}
