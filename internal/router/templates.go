package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	"github.com/labstack/echo/v4"
)

type TemplateLister interface {
	ListTemplates(ctx context.Context) ([]domain.PromptTemplate, error)
}

type TemplateRouter struct {
	e         *echo.Echo
	templates TemplateLister
}

func NewTemplateRouter(e *echo.Echo, templates TemplateLister) *TemplateRouter {
	return &TemplateRouter{e: e, templates: templates}
}

func (r *TemplateRouter) Bind() {
	r.e.GET("/api/prompt-templates", r.listHandler)
}

func (r *TemplateRouter) listHandler(c echo.Context) error {
	templates, err := r.templates.ListTemplates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}
