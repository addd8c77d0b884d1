package amqp

import (
	"encoding/json"
	"time"
)

// WidgetSyncMessage asks the worker to recompute one widget kind's
// snapshot. It carries only the kind: the worker re-reads the primary
// store, so a stale message still produces the latest derivable state.
type WidgetSyncMessage struct {
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewWidgetSyncMessage creates a sync message for a widget kind.
// Reason names the mutation that triggered it, for diagnostics only.
func NewWidgetSyncMessage(kind, reason string) *WidgetSyncMessage {
	return &WidgetSyncMessage{
		Kind:      kind,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *WidgetSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// WidgetSyncMessageFromJSON creates a message from JSON bytes
func WidgetSyncMessageFromJSON(data []byte) (*WidgetSyncMessage, error) {
	var msg WidgetSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
