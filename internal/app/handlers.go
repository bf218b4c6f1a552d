package app

import (
	"context"

	httpH "github.com/yungbote/techverse/internal/http/handlers"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/realtime"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Items     *httpH.ItemHandler
	TechGraph *httpH.TechGraphHandler
	Pages     *httpH.PageHandler
	Realtime  *httpH.RealtimeHandler
}

func wireHandlers(
	log *logger.Logger,
	serviceset Services,
	hub *realtime.SSEHub,
	metrics *observability.Metrics,
	ping func(ctx context.Context) error,
) Handlers {
	log.Info("Wiring handlers...")
	techGraph := httpH.NewTechGraphHandler(log, serviceset.TechGraph, metrics)
	return Handlers{
		Health:    httpH.NewHealthHandler(ping),
		Items:     httpH.NewItemHandler(log, serviceset.Items),
		TechGraph: techGraph,
		Pages:     httpH.NewPageHandler(log, serviceset.Items, techGraph),
		Realtime:  httpH.NewRealtimeHandler(log, hub, metrics),
	}
}
