package middlewares

import (
	"strings"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// AuthMiddleware requires a valid token and, when roles are given, one of those roles.
func AuthMiddleware(secret string, now func() time.Time, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			resp.Unauthorized(c, "Please log in to continue")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(tokenStr, secret, now())
		if err != nil {
			resp.Unauthorized(c, "Your session has expired, please log in again")
			c.Abort()
			return
		}

		actor := entity.Actor{UserID: claims.UserID, Role: claims.Role}
		utils.SetActor(c, actor)

		if len(requiredRoles) > 0 && !actor.Is(requiredRoles...) {
			resp.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is sent and
// otherwise lets the request through as a guest.
func OptionalAuth(secret string, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := utils.ParseToken(tokenStr, secret, now()); err == nil {
				utils.SetActor(c, entity.Actor{UserID: claims.UserID, Role: claims.Role})
			}
		}
		c.Next()
	}
}
