package health

import "github.com/gin-gonic/gin"

// ReadinessCheck reports whether the server can serve traffic
type ReadinessCheck func() error

// RegisterRoutes registers the routes for the health module
func RegisterRoutes(g *gin.RouterGroup, ready ReadinessCheck) {
	g.GET("/health", getStatus)
	g.GET("/health/ready", getReadiness(ready))
}
