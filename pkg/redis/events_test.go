package redis

import (
	"testing"
	"time"

	"github.com/Skyxo/killer/pkg/game"
)

func TestDecodeDepartureEvent(t *testing.T) {
	if _, ok := decodeDepartureEvent([]byte("not json"), "node-a"); ok {
		t.Error("Expected garbage to be dropped")
	}
	if _, ok := decodeDepartureEvent([]byte(`{"node":"node-b"}`), "node-a"); ok {
		t.Error("Expected an event without departure to be dropped")
	}

	payload := []byte(`{"node":"node-b","departure":{"kind":"kill","subject":"bob","hunter":"alice","order":1,` +
		`"repair":{"leaver":"bob","hunter":"alice","newTarget":"carl","action":"a3"},"gameOver":false,"at":"2024-01-01T00:00:00Z"}}`)
	if _, ok := decodeDepartureEvent(payload, "node-b"); ok {
		t.Error("Expected a node to ignore its own events")
	}
	ev, ok := decodeDepartureEvent(payload, "node-a")
	if !ok {
		t.Fatal("Expected the event of another node to be handled")
	}
	if ev.Departure.Kind != game.Kill || ev.Departure.Subject != "bob" || ev.Departure.Order != 1 {
		t.Errorf("Unexpected departure %+v", ev.Departure)
	}
	if !ev.Departure.At.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Unexpected departure time")
	}
}
