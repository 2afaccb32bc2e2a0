package inspector

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/protocol"
	"github.com/Ko-stant/tactical-grid/internal/ws"
)

// HubBroadcaster numbers events and writes them to every hub client.
type HubBroadcaster struct {
	hub      *ws.Hub
	sequence SequenceGenerator
	logger   logrus.FieldLogger
}

func NewHubBroadcaster(hub *ws.Hub, sequence SequenceGenerator, logger logrus.FieldLogger) *HubBroadcaster {
	return &HubBroadcaster{hub: hub, sequence: sequence, logger: logger}
}

func (b *HubBroadcaster) BroadcastEvent(eventType string, payload any) {
	data, err := json.Marshal(protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	})
	if err != nil {
		b.logger.Errorf("failed to marshal %s: %v", eventType, err)
		return
	}
	b.logger.WithField("clients", b.hub.Len()).Debugf("broadcasting %s", eventType)
	b.hub.Broadcast(context.Background(), data)
}
