package rest

import (
	"github.com/gin-gonic/gin"
)

const (
	apiKeyHeader   = "X-API-Key"
	contextUserKey = "testhooks_user"
)

// RequireAPIKey authenticates the X-API-Key header through the inbound
// receiver and stores the resolved user on the gin context.
func RequireAPIKey(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticator.Authenticate(c.Request.Context(), c.GetHeader(apiKeyHeader))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}
