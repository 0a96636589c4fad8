package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"})
			return
		}

		var ia *InvalidArgumentError
		if errors.As(err, &ia) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ia.Error(), "title": "invalid argument"})
			return
		}

		var nf *NotFoundError
		if errors.As(err, &nf) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": nf.Resource + " not found"})
			return
		}

		var pe *ProviderError
		if errors.As(err, &pe) {
			slog.Error("Provider call failed", "provider", pe.Provider, "operation", pe.Operation, "error", pe.Err)
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "generation backend unavailable"})
			return
		}

		var ce *ConfigurationError
		if errors.As(err, &ce) {
			slog.Error("Service misconfigured", "error", ce)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": ce.Message})
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
