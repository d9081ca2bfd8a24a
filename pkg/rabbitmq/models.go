package rabbitmq

import (
	"encoding/json"

	"github.com/google/uuid"
)

type EventPayload struct {
	ID      uuid.UUID       `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent wraps payload in an envelope with a fresh id and encodes it.
func NewEvent(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(EventPayload{
		ID:      uuid.New(),
		Type:    eventType,
		Payload: raw,
	})
}
