package facts_module

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethanbaker/til/pkg/facts"
	"github.com/ethanbaker/til/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	if _, ok := facts.AsValidationError(err); ok {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, facts.ErrFactNotFound):
		return http.StatusNotFound
	case errors.Is(err, facts.ErrUnknownCategory),
		errors.Is(err, facts.ErrInvalidCounter),
		errors.Is(err, facts.ErrInvalidVotes):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail returns the per-rule violations for validation errors, or the error itself
func errorDetail(err error) any {
	if verr, ok := facts.AsValidationError(err); ok {
		return verr.Violations
	}
	return err
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid fact id", c.Param("id")).AsGinResponse())
		return 0, false
	}
	return id, true
}

// GetCategories handles GET requests for the category registry
func GetCategories(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("Categories retrieved successfully", factService.Registry().Categories()).AsGinResponse())
}

// ListFacts handles GET requests for facts, optionally filtered by ?category= and capped by ?limit=
func ListFacts(c *gin.Context) {
	q := facts.Query{Category: c.DefaultQuery("category", facts.AllCategories)}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid limit", raw).AsGinResponse())
			return
		}
		q.Limit = limit
	}
	q = q.Normalize()

	list, err := factService.ListFacts(c.Request.Context(), q)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errorStatus(err), "Failed to list facts", err).AsGinResponse())
		return
	}

	resp := sdk.FactListResponse{Facts: list, Category: q.Category, Count: len(list)}
	c.JSON(sdk.NewSuccessResponse("Facts retrieved successfully", resp).AsGinResponse())
}

// GetFact handles GET requests for a single fact
func GetFact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	f, err := factService.GetFact(c.Request.Context(), id)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errorStatus(err), "Failed to get fact", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Fact retrieved successfully", f).AsGinResponse())
}

// CreateFact handles POST requests to share a new fact
func CreateFact(c *gin.Context) {
	// Parse request body
	var req sdk.CreateFactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	f, err := factService.CreateFact(c.Request.Context(), req)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errorStatus(err), "Failed to create fact", errorDetail(err)).AsGinResponse())
		return
	}

	c.JSON(sdk.NewCreatedResponse("Fact created successfully", f).AsGinResponse())
}

// UpdateFact handles PATCH requests setting a single vote counter
func UpdateFact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req sdk.UpdateFactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	counter, value, err := req.Counter()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Body must set exactly one vote counter", err).AsGinResponse())
		return
	}

	f, err := factService.UpdateVotes(c.Request.Context(), id, counter, value)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errorStatus(err), "Failed to update fact", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Fact updated successfully", f).AsGinResponse())
}
