package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/support-rag/internal/eval/report"
	"github.com/labstack/echo/v4"
)

type EvalRouter struct {
	e          *echo.Echo
	reportPath string
}

func NewEvalRouter(e *echo.Echo, reportPath string) *EvalRouter {
	return &EvalRouter{e: e, reportPath: reportPath}
}

func (r *EvalRouter) Bind() {
	r.e.GET("/api/eval/report", r.reportHandler)
}

// reportHandler serves the last persisted evaluation report, 404 when none was written yet.
func (r *EvalRouter) reportHandler(c echo.Context) error {
	rep, err := report.ReadJSON(r.reportPath)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}
