package cms

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

// AnalyticsRepository keeps one record per day.
type AnalyticsRepository struct {
	c collection[Analytics]
}

func newAnalyticsRepository(kv store.KV, events *bus.Bus) *AnalyticsRepository {
	return &AnalyticsRepository{c: collection[Analytics]{
		kv: kv, key: keyAnalytics, entity: bus.EntityAnalytics, events: events,
	}}
}

func (r *AnalyticsRepository) List() ([]Analytics, error) {
	return r.c.load()
}

// Track applies mutate to today's record, creating it on first touch.
// The date is fixed afterwards so mutators cannot move a record to
// another day.
func (r *AnalyticsRepository) Track(mutate func(*Analytics)) (*Analytics, error) {
	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Format("2006-01-02")

	for i := range items {
		if items[i].Date != today {
			continue
		}
		mutate(&items[i])
		items[i].Date = today
		if err := r.c.save(items, bus.OpUpdated); err != nil {
			return nil, err
		}
		a := items[i]
		return &a, nil
	}

	a := Analytics{
		ID:           uuid.NewString(),
		ProjectViews: map[string]int{},
		PopularPages: []PageStat{},
		Date:         today,
	}
	mutate(&a)
	a.Date = today
	items = append(items, a)
	if err := r.c.save(items, bus.OpCreated); err != nil {
		return nil, err
	}
	return &a, nil
}
