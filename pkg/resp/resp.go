package resp

import (
	"net/http"

	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}

// ServerError never shows the cause to the client.
func ServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": services.UserMessage(err)})
}

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindAuthorization:
		return http.StatusForbidden
	case services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error writes any service error with its user-facing message.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		ServerError(c, err)
		return
	}
	c.JSON(status, gin.H{"ok": false, "error": services.UserMessage(err)})
}
