package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/labstack/echo/v4"
)

type GenresResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// listGenres godoc
// @Summary List genres
// @Description Returns every genre ordered by id
// @Tags genres
// @Produce json
// @Success 200 {object} GenresResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/genres [get]
func (r *StoryRouter) listGenres(c echo.Context) error {
	genres, err := r.genres.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GenresResponse{Genres: genres})
}
