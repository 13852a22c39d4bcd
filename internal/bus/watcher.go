package bus

import (
	"context"
	"log"
	"time"
)

// Revisioner is the slice of the store the watcher needs.
type Revisioner interface {
	Revision() (uint64, error)
}

// Watcher polls the shared store's revision counter and broadcasts a
// change event when it moves. This is the second path into the bus:
// in-process mutations publish directly after their write, writes by
// other processes sharing the store file are noticed here. Our own
// writes move the counter too, so subscribers may see a redundant poke;
// they re-read either way.
type Watcher struct {
	store    Revisioner
	events   *Bus
	interval time.Duration
}

func NewWatcher(store Revisioner, events *Bus, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{store: store, events: events, interval: interval}
}

func (w *Watcher) Run(ctx context.Context) {
	last, err := w.store.Revision()
	if err != nil {
		log.Printf("sync watcher: read revision: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rev, err := w.store.Revision()
			if err != nil {
				log.Printf("sync watcher: read revision: %v", err)
				continue
			}
			if rev != last {
				last = rev
				w.events.Publish(Event{Entity: EntityAny, Op: OpExternal})
			}
		}
	}
}
