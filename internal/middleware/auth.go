package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/clinidesk/citas-api/internal/model"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	cache     *gocache.Cache
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		cache:     gocache.New(30*time.Second, time.Minute),
	}
}

// Authenticate verifies the bearer token and sets the user identity in context.
// Validated claims are cached briefly so repeated calls with the same token
// skip the user lookup.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				NewErrorResponse(http.StatusUnauthorized, "Token no proporcionado"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				NewErrorResponse(http.StatusUnauthorized, "Formato de autorización inválido"))
			return
		}
		token := parts[1]

		var claims *model.TokenClaims
		if cached, ok := m.cache.Get(token); ok {
			claims = cached.(*model.TokenClaims)
		} else {
			var err error
			claims, err = m.validator.ValidateToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					NewErrorResponse(http.StatusUnauthorized, "Token inválido"))
				return
			}
			m.cache.SetDefault(token, claims)
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
