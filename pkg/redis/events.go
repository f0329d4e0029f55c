package redis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/rediskey"
)

// DepartureEvent tells the other replicas that the stored game moved on
type DepartureEvent struct {
	Node      string          `json:"node"`
	Departure *game.Departure `json:"departure"`
}

func (redisDriver *Driver) PublishDeparture(ctx context.Context, node string, d *game.Departure) error {
	data, err := json.Marshal(DepartureEvent{Node: node, Departure: d})
	if err != nil {
		return err
	}
	return redisDriver.client.Publish(ctx, rediskey.DeparturesChannel(redisDriver.gameID), data).Err()
}

// ListenDepartures calls handler for every departure published by another node, until ctx is done
func (redisDriver *Driver) ListenDepartures(ctx context.Context, node string, handler func(DepartureEvent)) {
	sub := redisDriver.client.Subscribe(ctx, rediskey.DeparturesChannel(redisDriver.gameID))
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if ev, ok := decodeDepartureEvent([]byte(msg.Payload), node); ok {
				handler(ev)
			}
		}
	}
}

func decodeDepartureEvent(payload []byte, node string) (DepartureEvent, bool) {
	var ev DepartureEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Println("[Redis] invalid departure event:", err)
		return ev, false
	}
	if ev.Departure == nil || ev.Node == node {
		return ev, false
	}
	return ev, true
}
