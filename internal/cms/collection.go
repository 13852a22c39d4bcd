package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

// ErrNotFound is returned when an id is absent from its collection.
var ErrNotFound = errors.New("not found")

// Storage keys. The fitlearned_ namespace is the unit the cross-process
// watcher observes; every collection lives behind exactly one key.
const (
	keyProjects    = "fitlearned_cms_projects"
	keyExperiences = "fitlearned_cms_experiences"
	keySkills      = "fitlearned_cms_skills"
	keyEducation   = "fitlearned_cms_education"
	keySettings    = "fitlearned_cms_settings"
	keyBlogPosts   = "fitlearned_cms_blog_posts"
	keyAnalytics   = "fitlearned_cms_analytics"
	keySummaries   = "fitlearned_summaries"
	keyFiles       = "fitlearned_files"
)

// collection persists one entity type as a JSON array under a single
// namespaced key and announces every committed write on the bus.
type collection[T any] struct {
	kv     store.KV
	key    string
	entity bus.Entity
	events *bus.Bus
}

func (c *collection[T]) load() ([]T, error) {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.entity, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("load %s: decode: %w", c.entity, err)
	}
	return items, nil
}

func (c *collection[T]) save(items []T, op bus.Op) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("save %s: encode: %w", c.entity, err)
	}
	if err := c.kv.Set(c.key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", c.entity, err)
	}
	if c.events != nil {
		c.events.Publish(bus.Event{Entity: c.entity, Op: op})
	}
	return nil
}

// record is the meta surface the generic repository needs; Meta
// provides it to every embedding entity.
type record interface {
	id() string
	setID(string)
	createdAt() time.Time
	setCreatedAt(time.Time)
	touch(time.Time)
}

// repo is the CRUD core instantiated per entity type.
type repo[T any, PT interface {
	*T
	record
}] struct {
	collection[T]

	// less, when set, orders List results (stable, so ties keep
	// insertion order).
	less func(a, b T) bool

	// onCreate runs after meta assignment and before persisting, e.g.
	// to zero counters or derive a slug.
	onCreate func(PT)
}

func (r *repo[T, PT]) List() ([]T, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	if r.less != nil {
		sort.SliceStable(items, func(i, j int) bool { return r.less(items[i], items[j]) })
	}
	return items, nil
}

func (r *repo[T, PT]) Get(id string) (*T, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if PT(&items[i]).id() == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns a fresh id, stamps both timestamps to now and appends
// the record to its collection.
func (r *repo[T, PT]) Create(item T) (*T, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	p := PT(&item)
	now := time.Now().UTC()
	p.setID(uuid.NewString())
	p.setCreatedAt(now)
	p.touch(now)
	if r.onCreate != nil {
		r.onCreate(p)
	}

	items = append(items, item)
	if err := r.save(items, bus.OpCreated); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies mutate to the stored record. Identity and CreatedAt
// are restored afterwards, so a mutator cannot break them; UpdatedAt is
// refreshed. Returns ErrNotFound when the id is absent.
func (r *repo[T, PT]) Update(id string, mutate func(*T)) (*T, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		p := PT(&items[i])
		if p.id() != id {
			continue
		}
		created := p.createdAt()
		mutate(&items[i])
		p.setID(id)
		p.setCreatedAt(created)
		p.touch(time.Now().UTC())

		if err := r.save(items, bus.OpUpdated); err != nil {
			return nil, err
		}
		item := items[i]
		return &item, nil
	}
	return nil, ErrNotFound
}

// Delete removes the record immediately; there is no soft-delete.
func (r *repo[T, PT]) Delete(id string) error {
	items, err := r.load()
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	found := false
	for i := range items {
		if PT(&items[i]).id() == id {
			found = true
			continue
		}
		kept = append(kept, items[i])
	}
	if !found {
		return ErrNotFound
	}
	return r.save(kept, bus.OpDeleted)
}
