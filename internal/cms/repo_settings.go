package cms

import (
	"time"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

// SettingsRepository manages the site-wide singleton record.
type SettingsRepository struct {
	c collection[Settings]
}

func newSettingsRepository(kv store.KV, events *bus.Bus) *SettingsRepository {
	return &SettingsRepository{c: collection[Settings]{
		kv: kv, key: keySettings, entity: bus.EntitySettings, events: events,
	}}
}

// Get returns nil when settings have never been written.
func (r *SettingsRepository) Get() (*Settings, error) {
	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	s := items[0]
	return &s, nil
}

// Update merges onto the current record; the first call creates it.
// Previously set fields survive unless the mutator changes them.
func (r *SettingsRepository) Update(mutate func(*Settings)) (*Settings, error) {
	current, err := r.Get()
	if err != nil {
		return nil, err
	}

	s := Settings{ID: "1"}
	if current != nil {
		s = *current
	}
	mutate(&s)
	if current != nil {
		s.ID = current.ID
	} else if s.ID == "" {
		s.ID = "1"
	}
	s.UpdatedAt = time.Now().UTC()

	if err := r.c.save([]Settings{s}, bus.OpUpdated); err != nil {
		return nil, err
	}
	return &s, nil
}
