package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	userRepo "bookmycourt/database/repository/user"
	"bookmycourt/utils"
)

// AuthCachePrefix namespaces user-existence entries in the auth cache.
const AuthCachePrefix = "auth:user:"

// JWTAuthMiddleware validates the bearer token and sets userID and role on
// the context. User existence is checked against Redis first, falling back
// to the database on a cache miss.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx := context.Background()
		cacheKey := AuthCachePrefix + userID
		authCache := utils.GetAuthCacheClient()

		if val, err := authCache.Get(ctx, cacheKey).Result(); err == nil && val == "1" {
			c.Set("userID", userID)
			c.Set("role", role)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			utils.GetLogger().Sugar().Warnf("auth cache lookup failed, falling back to DB: %v", err)
		}

		usr, err := repo.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		_ = authCache.Set(ctx, cacheKey, "1", time.Hour).Err()

		c.Set("userID", userID)
		c.Set("role", usr.Role)
		c.Next()
	}
}
