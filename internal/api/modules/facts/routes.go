package facts_module

import (
	"github.com/gin-gonic/gin"
)

// Register routes for the facts module
func RegisterRoutes(g *gin.RouterGroup) {
	protected := g.Group("/")
	protected.Use(AuthenticationHandler())

	protected.GET("/categories", GetCategories)

	group := protected.Group("/facts")
	group.GET("", ListFacts)
	group.POST("", CreateFact)
	group.GET("/:id", GetFact)
	group.PATCH("/:id", UpdateFact)
}
