package inspector

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/protocol"
)

type broadcastEvent struct {
	Type    string
	Payload any
}

type recordingBroadcaster struct {
	events []broadcastEvent
}

func (b *recordingBroadcaster) BroadcastEvent(eventType string, payload any) {
	b.events = append(b.events, broadcastEvent{Type: eventType, Payload: payload})
}

// decodedPatch mirrors PatchEnvelope with a raw payload for the second decode.
type decodedPatch struct {
	Sequence uint64          `json:"seq"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

func createTestHandlers(t *testing.T) (*Handlers, *recordingBroadcaster, *Metrics) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	broadcaster := &recordingBroadcaster{}
	metrics := NewMetrics()
	h := NewHandlers(createDevSession(WithLogger(logger)), broadcaster, NewSequence(), metrics, logger)
	return h, broadcaster, metrics
}

func intent(t *testing.T, intentType string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(protocol.IntentEnvelope{Type: intentType, Payload: raw})
	require.NoError(t, err)
	return data
}

func decodeReply(t *testing.T, data []byte, wantType string, payload any) decodedPatch {
	t.Helper()
	require.NotNil(t, data)
	var p decodedPatch
	require.NoError(t, json.Unmarshal(data, &p))
	require.Equal(t, wantType, p.Type, string(data))
	require.NoError(t, json.Unmarshal(p.Payload, payload))
	return p
}

func TestHandleMessage_LineQueries(t *testing.T) {
	h, _, _ := createTestHandlers(t)
	q := protocol.QueryLine{From: vec(2.5, 2.5), To: vec(8.5, 5.5)}

	var sight protocol.LineResult
	decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryLineOfSight, q)), protocol.PatchLineResult, &sight)
	assert.Equal(t, "sight", sight.Kind)
	assert.True(t, sight.Clear)

	var fire protocol.LineResult
	decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryLineOfFire, q)), protocol.PatchLineResult, &fire)
	assert.Equal(t, "fire", fire.Kind)
	assert.True(t, fire.Clear)
	assert.Equal(t, q.To, fire.To)
}

func TestHandleMessage_QueryPath(t *testing.T) {
	h, _, _ := createTestHandlers(t)

	t.Run("blocked by closed door", func(t *testing.T) {
		var res protocol.PathResult
		decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryPath, protocol.QueryPath{Start: pt(11, 9), End: pt(14, 9)})), protocol.PatchPathResult, &res)

		assert.False(t, res.Found)
		assert.NotNil(t, res.Path)
		assert.Empty(t, res.Path)
	})

	t.Run("closed doors allowed", func(t *testing.T) {
		var res protocol.PathResult
		decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryPath, protocol.QueryPath{Start: pt(11, 9), End: pt(14, 9), AllowClosedDoors: true})), protocol.PatchPathResult, &res)

		assert.True(t, res.Found)
		assert.Equal(t, []geometry.Point{pt(12, 9), pt(13, 9), pt(14, 9)}, res.Path)
	})

	t.Run("same cell", func(t *testing.T) {
		var res protocol.PathResult
		decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryPath, protocol.QueryPath{Start: pt(3, 3), End: pt(3, 3)})), protocol.PatchPathResult, &res)

		assert.True(t, res.Found)
		assert.Empty(t, res.Path)
	})
}

func TestHandleMessage_QueryVisibleCells(t *testing.T) {
	h, _, _ := createTestHandlers(t)

	var res protocol.VisibleCells
	decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryVisibleCells, protocol.QueryVisibleCells{Origin: vec(0.5, 0.5), MaxRange: 1})), protocol.PatchVisibleCells, &res)

	assert.Equal(t, []string{"0,0", "0,1", "1,0"}, res.Cells)
	assert.Equal(t, 1.0, res.MaxRange)
}

func TestHandleMessage_SetDoorStateBroadcasts(t *testing.T) {
	h, broadcaster, metrics := createTestHandlers(t)

	reply := h.HandleMessage(intent(t, protocol.IntentSetDoorState, protocol.RequestSetDoorState{DoorID: "dev-door-0", State: geometry.DoorOpen}))

	assert.Nil(t, reply)
	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, protocol.PatchDoorStateChanged, broadcaster.events[0].Type)
	assert.Equal(t, protocol.DoorStateChanged{DoorID: "dev-door-0", State: geometry.DoorOpen}, broadcaster.events[0].Payload)
	assert.Equal(t, int64(1), metrics.Snapshot()[protocol.IntentSetDoorState].Count)

	var res protocol.PathResult
	decodeReply(t, h.HandleMessage(intent(t, protocol.IntentQueryPath, protocol.QueryPath{Start: pt(11, 9), End: pt(14, 9)})), protocol.PatchPathResult, &res)
	assert.True(t, res.Found)
}

func TestHandleMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantCode string
	}{
		{"not json", []byte("{"), CodeMalformedPayload},
		{"unknown intent", []byte(`{"type":"Teleport","payload":{}}`), CodeUnknownIntent},
		{"missing payload", []byte(`{"type":"QueryPath"}`), CodeMalformedPayload},
		{"wrong payload shape", []byte(`{"type":"QueryLineOfSight","payload":{"from":"here"}}`), CodeMalformedPayload},
		{"unknown door", []byte(`{"type":"SetDoorState","payload":{"doorId":"nope","state":"Open"}}`), CodeUnknownDoor},
		{"invalid state", []byte(`{"type":"SetDoorState","payload":{"doorId":"dev-door-0","state":"Ajar"}}`), CodeInvalidDoorState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, broadcaster, metrics := createTestHandlers(t)

			var res protocol.ErrorPayload
			decodeReply(t, h.HandleMessage(tt.data), protocol.PatchError, &res)

			assert.Equal(t, tt.wantCode, res.Code)
			assert.NotEmpty(t, res.Message)
			assert.Empty(t, broadcaster.events)
			assert.Empty(t, metrics.Snapshot())
		})
	}
}

func TestHandleMessage_SequenceIncreases(t *testing.T) {
	h, _, _ := createTestHandlers(t)
	q := intent(t, protocol.IntentQueryLineOfSight, protocol.QueryLine{From: vec(0.5, 0.5), To: vec(1.5, 0.5)})

	var res protocol.LineResult
	first := decodeReply(t, h.HandleMessage(q), protocol.PatchLineResult, &res)
	second := decodeReply(t, h.HandleMessage(q), protocol.PatchLineResult, &res)

	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, uint64(2), second.Sequence)
}
