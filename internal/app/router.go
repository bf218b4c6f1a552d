package app

import (
	"fmt"
	"net/http"

	apphttp "github.com/yungbote/techverse/internal/http"
	"github.com/yungbote/techverse/internal/http/web"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, metrics *observability.Metrics, dataDir string) (apphttp.RouterConfig, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return apphttp.RouterConfig{}, fmt.Errorf("parse templates: %w", err)
	}
	return apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		Templates:      tmpl,
		Static:         http.FS(web.Static()),
		DataDir:        dataDir,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		TracingEnabled: cfg.Otel.Enabled,
		ServiceName:    cfg.Otel.ServiceName,

		PageHandler:      handlerset.Pages,
		ItemHandler:      handlerset.Items,
		TechGraphHandler: handlerset.TechGraph,
		RealtimeHandler:  handlerset.Realtime,
		HealthHandler:    handlerset.Health,
	}, nil
}
