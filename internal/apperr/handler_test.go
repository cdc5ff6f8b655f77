package apperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func handle(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	apperr.GlobalErrorHandler()(err, c)
	return rec
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("stories failure is plain text", func(t *testing.T) {
		rec := handle(t, apperr.NewStoriesQueryFailed(errors.New("dial tcp 10.0.0.1:5432")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "5432")
	})

	t.Run("genres failure is structured", func(t *testing.T) {
		rec := handle(t, apperr.NewGenresQueryFailed(errors.New("SELECT * FROM genres")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch genres"}`, rec.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		rec := handle(t, apperr.NewValidation("bad"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"bad","title":"validation error"}`, rec.Body.String())
	})

	t.Run("validation with field", func(t *testing.T) {
		rec := handle(t, apperr.NewFieldValidation("stories[1]", "duplicate story id 2", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"duplicate story id 2","title":"validation error","field":"stories[1]"}`, rec.Body.String())
	})

	t.Run("echo http error", func(t *testing.T) {
		rec := handle(t, echo.NewHTTPError(http.StatusNotFound, "not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	})

	t.Run("unknown", func(t *testing.T) {
		rec := handle(t, errors.New("secret"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}
