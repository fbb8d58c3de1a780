package health

import (
	"net/http"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/til/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Return status of the API
func getStatus(c *gin.Context) {
	res := api_types.NewSuccessResponse("OK", nil)
	c.JSON(res.AsGinResponse())
}

func getReadiness(ready ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			if err := ready(); err != nil {
				c.JSON(sdk.NewErrorResponse(http.StatusServiceUnavailable, "Not ready", err).AsGinResponse())
				return
			}
		}
		c.JSON(sdk.NewSuccess("Ready").AsGinResponse())
	}
}
