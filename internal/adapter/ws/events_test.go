package ws

import (
	"encoding/json"
	"testing"
)

// The task change feed publishes {"task_id", "title"}; the bridge
// decodes that directly into TaskCompletedEvent, so the field tags
// must keep matching the feed payload.
func TestTaskCompletedEventDecodesFeedPayload(t *testing.T) {
	data := []byte(`{"task_id":"t-9","title":"Visit Casa Pepe"}`)

	var ev TaskCompletedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.TaskID != "t-9" || ev.Title != "Visit Casa Pepe" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}
