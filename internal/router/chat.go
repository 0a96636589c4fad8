package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/support-rag/internal/chat"
	"github.com/DjordjeVuckovic/support-rag/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type ChatRouter struct {
	e       *echo.Echo
	service *chat.Service
}

func NewChatRouter(e *echo.Echo, service *chat.Service) *ChatRouter {
	return &ChatRouter{
		e:       e,
		service: service,
	}
}

func (r *ChatRouter) Bind() {
	r.e.POST("/api/users", r.createUserHandler)

	g := r.e.Group("/api/chats", RequireUser(r.service.Store()))
	g.GET("", r.listChatsHandler)
	g.POST("", r.createChatHandler)
	g.GET("/:id/messages", r.listMessagesHandler)
	g.POST("/:id/messages", r.sendMessageHandler)
}

type createUserRequest struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
}

type sendMessageRequest struct {
	Content          string `json:"content"`
	PromptTemplateID string `json:"prompt_template_id"`
}

func (r *ChatRouter) createUserHandler(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := r.service.Store().CreateUser(c.Request().Context(), req.Username, req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (r *ChatRouter) listChatsHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}

	chats, err := r.service.Store().ListChats(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pagination.Slice(chats, page))
}

func (r *ChatRouter) createChatHandler(c echo.Context) error {
	created, err := r.service.Store().CreateChat(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (r *ChatRouter) listMessagesHandler(c echo.Context) error {
	msgs, err := r.service.Messages(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (r *ChatRouter) sendMessageHandler(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ex, err := r.service.SendMessage(c.Request().Context(), currentUser(c).ID, c.Param("id"), req.Content, req.PromptTemplateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ex)
}
