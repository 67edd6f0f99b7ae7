package controllers

import (
	"strconv"

	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
