package rabbitmq

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewEvent(t *testing.T) {
	body, err := NewEvent("incident.created", map[string]int{"number": 42})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}

	var evt EventPayload
	if err := json.Unmarshal(body, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.ID == uuid.Nil || evt.Type != "incident.created" {
		t.Errorf("event = %+v", evt)
	}
	if string(evt.Payload) != `{"number":42}` {
		t.Errorf("payload = %s", evt.Payload)
	}

	if _, err := NewEvent("x", make(chan int)); err == nil {
		t.Error("expected error for unencodable payload")
	}
}
