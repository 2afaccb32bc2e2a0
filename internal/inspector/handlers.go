package inspector

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/protocol"
)

// Broadcaster sends an event to every connected client.
type Broadcaster interface {
	BroadcastEvent(eventType string, payload any)
}

type Handlers struct {
	session     *Session
	broadcaster Broadcaster
	sequence    SequenceGenerator
	metrics     *Metrics
	logger      logrus.FieldLogger
}

func NewHandlers(session *Session, broadcaster Broadcaster, sequence SequenceGenerator, metrics *Metrics, logger logrus.FieldLogger) *Handlers {
	return &Handlers{
		session:     session,
		broadcaster: broadcaster,
		sequence:    sequence,
		metrics:     metrics,
		logger:      logger,
	}
}

// HandleMessage runs one intent and returns the encoded patch for the sender.
// It returns nil when the outcome went to every client through the
// broadcaster instead.
func (h *Handlers) HandleMessage(data []byte) []byte {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return h.fail("", newError(CodeMalformedPayload, "cannot decode intent: %v", err))
	}

	start := time.Now()
	patchType, payload, err := h.dispatch(env)
	if err != nil {
		return h.fail(env.Type, err)
	}
	if h.metrics != nil {
		h.metrics.Track(env.Type, time.Since(start))
	}
	if patchType == "" {
		return nil
	}
	return h.encode(patchType, payload)
}

func (h *Handlers) dispatch(env protocol.IntentEnvelope) (string, any, error) {
	switch env.Type {
	case protocol.IntentQueryLineOfSight, protocol.IntentQueryLineOfFire:
		var q protocol.QueryLine
		if err := decodePayload(env, &q); err != nil {
			return "", nil, err
		}
		res := protocol.LineResult{Kind: "sight", From: q.From, To: q.To}
		if env.Type == protocol.IntentQueryLineOfFire {
			res.Kind = "fire"
			res.Clear = h.session.LineOfFire(q.From, q.To)
		} else {
			res.Clear = h.session.LineOfSight(q.From, q.To)
		}
		return protocol.PatchLineResult, res, nil

	case protocol.IntentQueryPath:
		var q protocol.QueryPath
		if err := decodePayload(env, &q); err != nil {
			return "", nil, err
		}
		path := h.session.FindPath(q.Start, q.End, q.AllowClosedDoors)
		res := protocol.PathResult{Start: q.Start, End: q.End, Found: path != nil, Path: path}
		if path == nil {
			res.Path = []geometry.Point{}
		}
		return protocol.PatchPathResult, res, nil

	case protocol.IntentQueryVisibleCells:
		var q protocol.QueryVisibleCells
		if err := decodePayload(env, &q); err != nil {
			return "", nil, err
		}
		cells := h.session.VisibleCells(q.Origin, q.MaxRange)
		return protocol.PatchVisibleCells, protocol.VisibleCells{Origin: q.Origin, MaxRange: q.MaxRange, Cells: cells}, nil

	case protocol.IntentSetDoorState:
		var req protocol.RequestSetDoorState
		if err := decodePayload(env, &req); err != nil {
			return "", nil, err
		}
		door, err := h.session.SetDoorState(req.DoorID, req.State, req.TargetState)
		if err != nil {
			return "", nil, err
		}
		h.logger.WithFields(logrus.Fields{"door": door.ID, "state": door.State, "target": door.TargetState}).Info("door state changed")
		h.broadcaster.BroadcastEvent(protocol.PatchDoorStateChanged, protocol.DoorStateChanged{
			DoorID:      door.ID,
			State:       door.State,
			TargetState: door.TargetState,
		})
		return "", nil, nil
	}
	return "", nil, newError(CodeUnknownIntent, "unknown intent type %q", env.Type)
}

func (h *Handlers) fail(intent string, err error) []byte {
	var ie *InspectorError
	if !errors.As(err, &ie) {
		ie = &InspectorError{Code: "internal", Message: err.Error()}
	}
	h.logger.WithField("intent", intent).Warnf("intent rejected: %v", ie)
	return h.encode(protocol.PatchError, protocol.ErrorPayload{Code: ie.Code, Message: ie.Message})
}

func (h *Handlers) encode(patchType string, payload any) []byte {
	data, err := json.Marshal(protocol.PatchEnvelope{
		Sequence: h.sequence.Next(),
		Type:     patchType,
		Payload:  payload,
	})
	if err != nil {
		h.logger.Errorf("failed to marshal %s: %v", patchType, err)
		return nil
	}
	return data
}

func decodePayload(env protocol.IntentEnvelope, v any) error {
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return newError(CodeMalformedPayload, "%s payload: %v", env.Type, err)
	}
	return nil
}
