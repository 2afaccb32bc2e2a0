package inspector

import "fmt"

// Error codes reported to clients in an Error patch.
const (
	CodeUnknownIntent    = "unknown_intent"
	CodeMalformedPayload = "malformed_payload"
	CodeUnknownDoor      = "unknown_door"
	CodeInvalidDoorState = "invalid_door_state"
)

// InspectorError is a client-facing failure of a single intent.
type InspectorError struct {
	Code    string
	Message string
}

func (e *InspectorError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) *InspectorError {
	return &InspectorError{Code: code, Message: fmt.Sprintf(format, args...)}
}
