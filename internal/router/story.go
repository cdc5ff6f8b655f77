package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/story-hunter/internal/search"
	"github.com/labstack/echo/v4"
)

// StoryRouter serves the catalog read API.
type StoryRouter struct {
	e       *echo.Echo
	planner *search.Planner
	genres  *search.GenreLister
}

func NewStoryRouter(e *echo.Echo, planner *search.Planner, genres *search.GenreLister) *StoryRouter {
	return &StoryRouter{
		e:       e,
		planner: planner,
		genres:  genres,
	}
}

func (r *StoryRouter) Bind() {
	api := r.e.Group("/api")
	api.GET("/stories", r.searchStories)
	api.GET("/genres", r.listGenres)
}

// searchStories godoc
// @Summary Search stories
// @Description Searches story titles and ranks prefix matches above other matches, ties by id
// @Tags stories
// @Produce json
// @Param page query int false "Page number, starting at 1" default(1)
// @Param limit query int false "Page size" default(3)
// @Param pageSize query int false "Alias of limit"
// @Param search query string false "Case-insensitive title substring"
// @Param genres query string false "Comma-separated genre ids"
// @Success 200 {object} search.Result
// @Failure 500 {string} string
// @Router /api/stories [get]
func (r *StoryRouter) searchStories(c echo.Context) error {
	limit := c.QueryParam("limit")
	if limit == "" {
		limit = c.QueryParam("pageSize")
	}

	req := search.ParseRequest(
		c.QueryParam("page"),
		limit,
		c.QueryParam("search"),
		c.QueryParam("genres"),
	)

	res, err := r.planner.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}
