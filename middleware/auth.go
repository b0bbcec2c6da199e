// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	profileRepo "mentormatch/database/repository/profile"
	userRepo "mentormatch/database/repository/user"
	"mentormatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token, checks the token hash against
// the auth cache (falling back to the user record on a miss) and sets both
// "userID" and the caller's "profileID" into the request context.
func JWTAuthMiddleware(users userRepo.UserRepository, profiles profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Compute the token hash.
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		// Attempt the auth cache first; logout deletes this key, so a match
		// means the token is still the active one.
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				setIdentity(c, profiles, userID)
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to DB",
					zap.Error(err))
			}
		}

		// Cache miss: compare against the stored hash on the user record.
		usr, err := users.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		setIdentity(c, profiles, userID)
	}
}

// setIdentity resolves the caller's profile and stores both IDs in the
// context. Booking, session and payment handlers act on profile IDs.
func setIdentity(c *gin.Context, profiles profileRepo.ProfileRepository, userID string) {
	c.Set("userID", userID)

	profile, err := profiles.GetByUserID(userID)
	if err != nil || profile == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}
	c.Set("profileID", profile.ID)
	c.Set("profile", profile)
	c.Next()
}
