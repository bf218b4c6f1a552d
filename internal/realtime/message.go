package realtime

type SSEEvent string

const (
	SSEEventItemsChanged SSEEvent = "items.changed"
)

// ChannelItems is the broadcast channel every item-manager session joins.
const ChannelItems = "items"

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}
