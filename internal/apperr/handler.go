package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	storiesFailedBody = "Internal Server Error"
	genresFailedBody  = "Failed to fetch genres"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var qe *QueryError
		if errors.As(err, &qe) {
			slog.Error("Query failed", "kind", qe.Kind, "uri", c.Request().RequestURI, "error", qe.Err)
			switch qe.Kind {
			case QueryGenres:
				_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": genresFailedBody})
			default:
				_ = c.String(http.StatusInternalServerError, storiesFailedBody)
			}
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			body := map[string]string{"error": ve.Message, "title": "validation error"}
			if ve.Field != "" {
				body["field"] = ve.Field
			}
			_ = c.JSON(http.StatusBadRequest, body)
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
