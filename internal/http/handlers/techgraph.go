package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/techverse/internal/http/response"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/pages"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/services"
	"github.com/yungbote/techverse/internal/techgraph"
)

type TechGraphHandler struct {
	log     *logger.Logger
	graph   services.TechGraphService
	metrics *observability.Metrics
}

func NewTechGraphHandler(log *logger.Logger, graph services.TechGraphService, metrics *observability.Metrics) *TechGraphHandler {
	return &TechGraphHandler{
		log:     log.With("handler", "TechGraphHandler"),
		graph:   graph,
		metrics: metrics,
	}
}

// buildPage assembles the graph page state for one request from the shared
// dataset and the technology/category query parameters.
func (h *TechGraphHandler) buildPage(c *gin.Context) *pages.TechGraphPage {
	page := pages.NewTechGraphPage()
	if ds, ok := h.graph.Dataset(); ok {
		page.DatasetLoaded(ds)
	}
	page.OnProject(func(g techgraph.Graph) { h.metrics.ObserveProjection(len(g.Nodes)) })

	var category *string
	if v, ok := c.GetQuery("category"); ok {
		category = &v
	}
	page.ApplyQuery(c.Query("technology"), category)
	return page
}

// GET /api/tech-graph?technology=&category=
func (h *TechGraphHandler) Graph(c *gin.Context) {
	page := h.buildPage(c)
	g := page.Graph()
	response.RespondOK(c, gin.H{
		"nodes":       g.Nodes,
		"edges":       g.Edges,
		"filter":      page.Filter(),
		"placeholder": page.Placeholder(),
	})
}

// GET /api/tech-graph/options
func (h *TechGraphHandler) Options(c *gin.Context) {
	page := h.buildPage(c)
	response.RespondOK(c, gin.H{
		"technologies": page.TechOptions(),
		"categories":   page.Categories(),
	})
}
