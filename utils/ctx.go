package utils

import (
	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "userId"
	ctxRole      = "role"
	ctxRequestID = "requestId"
)

func SetActor(c *gin.Context, a entity.Actor) {
	c.Set(ctxUserID, a.UserID)
	c.Set(ctxRole, a.Role)
}

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(uint)
	return id
}

func CurrentRole(c *gin.Context) entity.Role {
	v, _ := c.Get(ctxRole)
	r, _ := v.(entity.Role)
	return r
}

// CurrentActor is anonymous unless an auth middleware identified the caller.
func CurrentActor(c *gin.Context) entity.Actor {
	return entity.Actor{UserID: CurrentUserID(c), Role: CurrentRole(c)}
}

func SetRequestID(c *gin.Context, id string) { c.Set(ctxRequestID, id) }

func RequestID(c *gin.Context) string { return c.GetString(ctxRequestID) }
