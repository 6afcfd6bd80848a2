package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefeed/feedback-backend/internal/config"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
)

const actorKey = "actor"

// AuthMiddleware resolves the bearer token to a live account. The account is
// re-read so role changes and blocks apply immediately, not at token expiry.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil || claims.Type != string(utils.AccessToken) {
			utils.SendUnauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.SendUnauthorized(c, "Account no longer exists")
			c.Abort()
			return
		}
		if user.IsBlocked {
			utils.SendForbidden(c, "This account is blocked")
			c.Abort()
			return
		}

		c.Set(actorKey, roles.Actor{ID: user.ID, Email: user.Email, Role: roles.Role(user.Role)})
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// CurrentActor returns the authenticated actor attached by AuthMiddleware.
func CurrentActor(c *gin.Context) (roles.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return roles.Actor{}, false
	}
	actor, ok := v.(roles.Actor)
	return actor, ok
}

// RequireRole denies actors below the lowest level in the allowed set: the
// set means "any of these roles or higher".
func RequireRole(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			utils.SendUnauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		if !roles.HasAnyAtLeast(actor.Role, allowed...) {
			utils.SendForbidden(c, "Insufficient role for this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}
