package facts_module

import (
	"net/http"
	"strings"

	"github.com/ethanbaker/til/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// APIKey extracts the key from the X-API-KEY or apikey headers, or from a
// "Bearer <key>" Authorization header
func APIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-KEY"); key != "" {
		return key
	}
	if key := c.GetHeader("apikey"); key != "" {
		return key
	}
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AuthenticationHandler middleware rejects requests without the configured API key.
// When no key is configured every request passes
func AuthenticationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := GetService()
		if svc == nil || !svc.RequiresKey() {
			c.Next()
			return
		}

		key := APIKey(c)
		if key == "" {
			c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "API key required", nil).AsGinResponse())
			c.Abort()
			return
		}

		if !svc.Authenticate(key) {
			c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid API key", nil).AsGinResponse())
			c.Abort()
			return
		}

		c.Next()
	}
}
