package services

import (
	"context"

	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/realtime"
	"github.com/yungbote/techverse/internal/realtime/bus"
)

type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

// HubEmitter delivers straight into the local hub (single instance).
type HubEmitter struct {
	Hub     *realtime.SSEHub
	Metrics *observability.Metrics
}

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.Hub.Broadcast(msg)
	e.Metrics.SSEPublished()
}

// BusEmitter publishes to the shared bus; each instance's forwarder feeds its hub.
type BusEmitter struct {
	Bus     bus.Bus
	Log     *logger.Logger
	Metrics *observability.Metrics
}

func (e *BusEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if err := e.Bus.Publish(context.WithoutCancel(ctx), msg); err != nil {
		if e.Log != nil {
			e.Log.Warn("Publish realtime message failed", "event", string(msg.Event), "error", err)
		}
		return
	}
	e.Metrics.SSEPublished()
}
