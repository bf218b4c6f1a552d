package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/pages"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/services"
)

// PageHandler serves the server-rendered HTML views. The item forms post
// back here so the app works without JavaScript.
type PageHandler struct {
	log   *logger.Logger
	items services.ItemService
	graph *TechGraphHandler
}

func NewPageHandler(log *logger.Logger, items services.ItemService, graph *TechGraphHandler) *PageHandler {
	return &PageHandler{
		log:   log.With("handler", "PageHandler"),
		items: items,
		graph: graph,
	}
}

func (h *PageHandler) renderHome(c *gin.Context, status int, page *pages.HomePage) {
	c.HTML(status, "home.html", gin.H{
		"Title":     "Items",
		"Active":    "home",
		"Items":     page.Items,
		"Error":     page.Error,
		"MaxLength": types.MaxItemTextLength,
	})
}

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	page := pages.NewHomePage(h.items)
	status := http.StatusOK
	if err := page.Load(c.Request.Context()); err != nil {
		status = http.StatusInternalServerError
	}
	h.renderHome(c, status, page)
}

// POST /items
// form: text
func (h *PageHandler) AddItem(c *gin.Context) {
	page := pages.NewHomePage(h.items)
	if err := page.Add(c.Request.Context(), c.PostForm("text")); err != nil {
		_ = page.Load(c.Request.Context())
		h.renderHome(c, formErrorStatus(err), page)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /items/:id/delete
func (h *PageHandler) DeleteItem(c *gin.Context) {
	page := pages.NewHomePage(h.items)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		page.Error = "Invalid item id"
		_ = page.Load(c.Request.Context())
		h.renderHome(c, http.StatusBadRequest, page)
		return
	}
	if err := page.Delete(c.Request.Context(), id); err != nil {
		_ = page.Load(c.Request.Context())
		h.renderHome(c, formErrorStatus(err), page)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GET /tech-graph?technology=&category=
func (h *PageHandler) TechGraph(c *gin.Context) {
	page := h.graph.buildPage(c)
	_, loaded := h.graph.graph.Dataset()
	c.HTML(http.StatusOK, "tech_graph.html", gin.H{
		"Title":        "Technology Graph",
		"Active":       "graph",
		"Page":         page,
		"Loaded":       loaded,
		"Technologies": page.TechOptions(),
		"Categories":   page.Categories(),
		"Placeholder":  page.Placeholder(),
		"Graph":        page.Graph(),
	})
}

func formErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
