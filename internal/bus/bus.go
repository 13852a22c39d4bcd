package bus

import "sync"

// Op says how a collection changed.
type Op string

const (
	OpCreated  Op = "created"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
	OpSeeded   Op = "seeded"
	OpExternal Op = "external"
)

// Entity names the collection a change event is about.
type Entity string

const (
	EntityProjects    Entity = "projects"
	EntityExperiences Entity = "experiences"
	EntitySkills      Entity = "skills"
	EntityEducation   Entity = "education"
	EntitySettings    Entity = "settings"
	EntityBlogPosts   Entity = "blog_posts"
	EntityAnalytics   Entity = "analytics"
	EntityFiles       Entity = "files"
	EntitySummaries   Entity = "summaries"
	EntityUsers       Entity = "users"

	// EntityAny marks a change whose collection is unknown, e.g. a write
	// noticed through the store's revision counter.
	EntityAny Entity = "*"
)

// Event announces a committed write. It carries no payload beyond the
// collection and operation; consumers re-read from the store.
type Event struct {
	Entity Entity `json:"entity"`
	Op     Op     `json:"op"`
}

// Bus fans change events out to every subscriber. Delivery is
// best-effort: a subscriber that falls behind misses events and catches
// up on the next one, since every event means "re-read everything".
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func New() *Bus {
	return &Bus{subs: map[int]chan Event{}}
}

// Subscribe returns a channel of change events and a cancel function.
// Cancel closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
