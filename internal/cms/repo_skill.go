package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type SkillRepository struct {
	repo[Skill, *Skill]
}

func newSkillRepository(kv store.KV, events *bus.Bus) *SkillRepository {
	return &SkillRepository{repo[Skill, *Skill]{
		collection: collection[Skill]{kv: kv, key: keySkills, entity: bus.EntitySkills, events: events},
		less:       func(a, b Skill) bool { return a.Order < b.Order },
	}}
}

func (r *SkillRepository) ByCategory(category SkillCategory) ([]Skill, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make([]Skill, 0, len(items))
	for _, s := range items {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}
