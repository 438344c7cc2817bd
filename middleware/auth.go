package middleware

import (
	"net/http"
	"strings"

	"edupath/utils"

	"github.com/gin-gonic/gin"
)

// BearerAuthMiddleware validates the Authorization bearer token on wizard
// routes. A 401 response carries a redirect hint so the client can send the
// user to the login page.
func BearerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Insufficient authorization",
				"redirect": "/login",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Insufficient authorization",
				"redirect": "/login",
			})
			return
		}

		c.Set("subject", subject)
		c.Next()
	}
}
