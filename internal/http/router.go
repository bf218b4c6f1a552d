package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/techverse/internal/http/handlers"
	httpMW "github.com/yungbote/techverse/internal/http/middleware"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	Templates      *template.Template
	Static         http.FileSystem
	DataDir        string // served at /data when the dataset lives on local disk
	AllowedOrigins []string
	RequestTimeout time.Duration
	TracingEnabled bool
	ServiceName    string

	PageHandler      *httpH.PageHandler
	ItemHandler      *httpH.ItemHandler
	TechGraphHandler *httpH.TechGraphHandler
	RealtimeHandler  *httpH.RealtimeHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}
	if cfg.Static != nil {
		r.StaticFS("/static", cfg.Static)
	}
	if cfg.DataDir != "" {
		r.Static("/data", cfg.DataDir)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Realtime (SSE) stays outside the request timeout.
	if cfg.RealtimeHandler != nil {
		r.GET("/api/events", cfg.RealtimeHandler.SSEStream)
	}

	bounded := r.Group("/")
	bounded.Use(httpMW.RequestTimeout(cfg.RequestTimeout))
	{
		// Pages
		if cfg.PageHandler != nil {
			bounded.GET("/", cfg.PageHandler.Home)
			bounded.POST("/items", cfg.PageHandler.AddItem)
			bounded.POST("/items/:id/delete", cfg.PageHandler.DeleteItem)
			bounded.GET("/tech-graph", cfg.PageHandler.TechGraph)
		}

		api := bounded.Group("/api")

		// Items (remote procedures)
		if cfg.ItemHandler != nil {
			api.POST("/GetItems", cfg.ItemHandler.GetItems)
			api.POST("/AddItem", cfg.ItemHandler.AddItem)
			api.POST("/DeleteItem", cfg.ItemHandler.DeleteItem)
		}

		// Tech graph
		if cfg.TechGraphHandler != nil {
			api.GET("/tech-graph", cfg.TechGraphHandler.Graph)
			api.GET("/tech-graph/options", cfg.TechGraphHandler.Options)
		}
	}

	return r
}
