package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const principalKey = "auth_principal"

// Middleware enforces bearer auth and attaches the principal to the request
// context.
func Middleware(tokens *TokenManager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		principal, err := tokens.Verify(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// SetPrincipal attaches a principal to the request context, bypassing token
// verification. Intended for request handling tests.
func SetPrincipal(c *gin.Context, principal *Principal) {
	c.Set(principalKey, principal)
}

// PrincipalFromContext returns the verified principal, if any.
func PrincipalFromContext(c *gin.Context) (*Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"message": message,
			"type":    "unauthorized_error",
		},
	})
}
