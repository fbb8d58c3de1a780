package web_module

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	facts_module "github.com/ethanbaker/til/internal/api/modules/facts"
	"github.com/ethanbaker/til/pkg/facts"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// factView is a fact with its display color resolved
type factView struct {
	facts.Fact
	Color      string
	IsDisputed bool
}

// pageData feeds the page template
type pageData struct {
	Categories []facts.Category
	Current    string
	Facts      []factView
	ShowForm   bool
	Form       facts.Draft
	Remaining  int
	Errors     []string
	FilterURL  string
	FormURL    string
}

// filterURL links back to the page for a category filter
func filterURL(category string, showForm bool) string {
	q := url.Values{}
	q.Set("category", category)
	if showForm {
		q.Set("form", "1")
	}
	return "/?" + q.Encode()
}

// renderPage loads the facts for category and writes the page
func renderPage(c *gin.Context, status int, category string, showForm bool, form facts.Draft, errs []string) {
	svc := facts_module.GetService()
	registry := svc.Registry()

	data := pageData{
		Categories: registry.Categories(),
		Current:    category,
		ShowForm:   showForm,
		Form:       form,
		Remaining:  form.RemainingChars(),
		Errors:     errs,
		FilterURL:  filterURL(category, false),
		FormURL:    filterURL(category, true),
	}

	list, err := svc.ListFacts(c.Request.Context(), facts.NewQuery(category))
	if err != nil {
		data.Errors = append(data.Errors, "There was a problem getting data")
		if status == http.StatusOK {
			status = http.StatusInternalServerError
		}
	}

	for _, f := range list {
		data.Facts = append(data.Facts, factView{
			Fact:       f,
			Color:      registry.Color(f.Category),
			IsDisputed: f.Disputed(),
		})
	}

	c.Render(status, render.HTML{Template: pageTemplate, Name: "page", Data: data})
}

// currentFilter returns a valid category filter from value, defaulting to "all"
func currentFilter(value string) string {
	if facts_module.GetService().Registry().IsFilter(value) {
		return value
	}
	return facts.AllCategories
}

// GetPage handles GET / with an optional ?category= filter and ?form=1 to open the form
func GetPage(c *gin.Context) {
	category := c.DefaultQuery("category", facts.AllCategories)
	if !facts_module.GetService().Registry().IsFilter(category) {
		renderPage(c, http.StatusBadRequest, facts.AllCategories, false, facts.Draft{}, []string{"Unknown category " + category})
		return
	}

	showForm := c.Query("form") == "1"
	renderPage(c, http.StatusOK, category, showForm, facts.Draft{}, nil)
}

// PostFact handles the share form and redirects back to the list
func PostFact(c *gin.Context) {
	category := currentFilter(c.PostForm("filter"))
	draft := facts.Draft{
		Text:     c.PostForm("text"),
		Source:   c.PostForm("source"),
		Category: c.PostForm("category"),
	}

	if _, err := facts_module.GetService().CreateFact(c.Request.Context(), draft); err != nil {
		var errs []string
		if verr, ok := facts.AsValidationError(err); ok {
			for _, v := range verr.Violations {
				errs = append(errs, v.Message)
			}
		} else if errors.Is(err, facts.ErrUnknownCategory) {
			errs = append(errs, "Choose a category from the list")
		} else {
			errs = append(errs, "Could not share the fact")
		}

		renderPage(c, http.StatusBadRequest, category, true, draft, errs)
		return
	}

	c.Redirect(http.StatusSeeOther, filterURL(category, false))
}

// PostVote applies one vote to a fact and redirects back to the list
func PostVote(c *gin.Context) {
	category := currentFilter(c.PostForm("filter"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderPage(c, http.StatusBadRequest, category, false, facts.Draft{}, []string{"Invalid fact id"})
		return
	}

	counter, err := facts.ParseCounter(c.Param("counter"))
	if err != nil {
		renderPage(c, http.StatusBadRequest, category, false, facts.Draft{}, []string{"Unknown vote " + c.Param("counter")})
		return
	}

	svc := facts_module.GetService()
	f, err := svc.GetFact(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, facts.ErrFactNotFound) {
			status = http.StatusNotFound
		}
		renderPage(c, status, category, false, facts.Draft{}, []string{"Could not find that fact"})
		return
	}

	if _, err := svc.UpdateVotes(c.Request.Context(), id, counter, f.Votes(counter)+1); err != nil {
		renderPage(c, http.StatusInternalServerError, category, false, facts.Draft{}, []string{"Could not record the vote"})
		return
	}

	c.Redirect(http.StatusSeeOther, filterURL(category, false))
}
