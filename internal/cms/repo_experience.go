package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

// ExperienceRepository lists entries by display order. Order values are
// a sort hint, not unique: ties keep insertion order.
type ExperienceRepository struct {
	repo[Experience, *Experience]
}

func newExperienceRepository(kv store.KV, events *bus.Bus) *ExperienceRepository {
	return &ExperienceRepository{repo[Experience, *Experience]{
		collection: collection[Experience]{kv: kv, key: keyExperiences, entity: bus.EntityExperiences, events: events},
		less:       func(a, b Experience) bool { return a.Order < b.Order },
	}}
}
