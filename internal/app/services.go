package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/datasets"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/realtime"
	"github.com/yungbote/techverse/internal/services"
)

type Services struct {
	Items     services.ItemService
	TechGraph services.TechGraphService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	reposet Repos,
	clients Clients,
	hub *realtime.SSEHub,
	metrics *observability.Metrics,
	source datasets.Source,
) Services {
	log.Info("Wiring services...")

	// With a bus every instance (this one included) hears the change through
	// its forwarder, so the local hub is not written directly.
	var emit services.SSEEmitter = &services.HubEmitter{Hub: hub, Metrics: metrics}
	if clients.SSEBus != nil {
		emit = &services.BusEmitter{Bus: clients.SSEBus, Log: log, Metrics: metrics}
	}

	items := services.NewItemService(db, log, reposet.Item,
		services.WithEmitter(emit),
		services.WithMetrics(metrics),
	)

	return Services{
		Items:     items,
		TechGraph: services.NewTechGraphService(log, datasets.NewLoader(source, log, metrics)),
	}
}
