package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-testhooks/core"
)

func renderError(c *gin.Context, err error) {
	mapped := core.MapError(err)
	if mapped == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}
	status := mapped.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}
	message := strings.TrimSpace(mapped.Message)
	if message == "" {
		message = "An unexpected error occurred"
	}
	c.JSON(status, gin.H{"error": message})
}

func abortWithError(c *gin.Context, err error) {
	renderError(c, err)
	c.Abort()
}
