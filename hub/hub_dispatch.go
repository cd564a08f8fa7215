package hub

import (
	"encoding/json"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
)

// Publish delivers the event to every current member of the topic
//
// The envelope is encoded once and queued to a snapshot of the members.
// Stale connections are skipped, the remaining members still receive the event.
func (h *Hub) Publish(topic model.Topic, event model.Event) {
	members := h.registry.MembersOf(topic)
	if len(members) == 0 {
		return
	}

	payload, err := json.Marshal(model.NewEnvelope(event))
	if err != nil {
		logging.Log().Error("error encoding", event.EventType(), "event:", err)
		return
	}

	delivered, stale := h.deliver(members, payload)

	h.metrics.published(topic, delivered, stale)

	logging.Log().Tracef("published %s on %s to %d of %d members", event.EventType(), topic, delivered, len(members))
}

func (h *Hub) deliver(members []api.ConnectionInterface, payload []byte) (delivered, stale int) {
	for _, conn := range members {
		if err := conn.WriteMessage(payload); err != nil {
			logging.Log().Debug(conn.ID(), "skipping stale connection:", err)
			stale++
			continue
		}
		delivered++
	}

	return delivered, stale
}

// send an event to a single connection
func (h *Hub) sendTo(conn api.ConnectionInterface, event model.Event) {
	payload, err := json.Marshal(model.NewEnvelope(event))
	if err != nil {
		logging.Log().Error("error encoding", event.EventType(), "event:", err)
		return
	}

	if err := conn.WriteMessage(payload); err != nil {
		logging.Log().Debug(conn.ID(), "error sending", event.EventType(), "event:", err)
	}
}
