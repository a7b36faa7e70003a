package middleware

import (
	"strings"

	"akaraka_backend/internal/config"
	"akaraka_backend/internal/model"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and stores the claims on the
// context under "user".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, cfg.JWT.Secret)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware resolves the token when present but lets anonymous
// requests through. Endpoints that personalize for signed-in users use this.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, cfg.JWT.Secret); ok {
			c.Set("user", claims)
		}
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles past. Must run after
// AuthMiddleware.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		util.Forbidden(c)
		c.Abort()
	}
}

func parseBearer(c *gin.Context, secret string) (*util.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil, false
	}

	claims, err := util.ParseJWT(token, secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}
