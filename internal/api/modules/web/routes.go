package web_module

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Register routes for the server-rendered fact page
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", GetPage)
	g.POST("/facts", PostFact)
	g.POST("/facts/:id/vote/:counter", PostVote)
}
