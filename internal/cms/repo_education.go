package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type EducationRepository struct {
	repo[Education, *Education]
}

func newEducationRepository(kv store.KV, events *bus.Bus) *EducationRepository {
	return &EducationRepository{repo[Education, *Education]{
		collection: collection[Education]{kv: kv, key: keyEducation, entity: bus.EntityEducation, events: events},
		less:       func(a, b Education) bool { return a.Order < b.Order },
	}}
}
