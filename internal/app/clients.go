package app

import (
	"context"
	"fmt"

	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/platform/neo4jdb"
	"github.com/yungbote/techverse/internal/realtime/bus"
)

type Clients struct {
	SSEBus bus.Bus
	Neo4j  *neo4jdb.Client
}

var newRedisBus = bus.NewRedisBus

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var sseBus bus.Bus
	if cfg.Redis.Addr != "" {
		b, err := newRedisBus(log, bus.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		sseBus = b
	}

	// Neo4j (nil when NEO4J_URI is unset)
	graphDB, err := neo4jdb.New(ctx, log, cfg.Neo4j)
	if err != nil {
		if sseBus != nil {
			_ = sseBus.Close()
		}
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}

	return Clients{SSEBus: sseBus, Neo4j: graphDB}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(context.Background())
	}
}
