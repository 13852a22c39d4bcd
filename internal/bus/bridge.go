package bus

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const bridgeChannel = "fitlearned:changes"

// transport is the slice of the Redis pub/sub client the bridge uses.
type transport interface {
	publish(ctx context.Context, payload []byte) error
	listen(ctx context.Context) <-chan string
}

// Bridge mirrors bus events onto a shared pub/sub channel so that
// instances on other hosts converge on the same broadcast. Remote
// events are republished locally as OpExternal, which the bridge never
// forwards back out, so two bridges cannot feed each other in a loop.
type Bridge struct {
	transport transport
	events    *Bus
	instance  string
}

type wireEvent struct {
	Event
	Origin string `json:"origin"`
}

func NewBridge(client *redis.Client, events *Bus, instanceID string) *Bridge {
	return &Bridge{transport: redisTransport{client: client}, events: events, instance: instanceID}
}

func (br *Bridge) Run(ctx context.Context) {
	local, cancel := br.events.Subscribe()
	defer cancel()

	remote := br.transport.listen(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-local:
			if !ok {
				return
			}
			if ev.Op == OpExternal {
				continue
			}
			payload, err := json.Marshal(wireEvent{Event: ev, Origin: br.instance})
			if err != nil {
				continue
			}
			if err := br.transport.publish(ctx, payload); err != nil {
				log.Printf("sync bridge: publish: %v", err)
			}
		case msg, ok := <-remote:
			if !ok {
				return
			}
			var ev wireEvent
			if err := json.Unmarshal([]byte(msg), &ev); err != nil {
				log.Printf("sync bridge: decode remote event: %v", err)
				continue
			}
			if ev.Origin == br.instance {
				continue
			}
			br.events.Publish(Event{Entity: ev.Entity, Op: OpExternal})
		}
	}
}

type redisTransport struct {
	client *redis.Client
}

func (t redisTransport) publish(ctx context.Context, payload []byte) error {
	return t.client.Publish(ctx, bridgeChannel, payload).Err()
}

func (t redisTransport) listen(ctx context.Context) <-chan string {
	sub := t.client.Subscribe(ctx, bridgeChannel)
	out := make(chan string)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
