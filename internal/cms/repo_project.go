package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type ProjectRepository struct {
	repo[Project, *Project]
}

func newProjectRepository(kv store.KV, events *bus.Bus) *ProjectRepository {
	return &ProjectRepository{repo[Project, *Project]{
		collection: collection[Project]{kv: kv, key: keyProjects, entity: bus.EntityProjects, events: events},
		onCreate: func(p *Project) {
			// Counters always start at zero, whatever the caller sent.
			p.Views = 0
			p.Likes = 0
		},
	}}
}

// Published returns projects visible on the public site.
func (r *ProjectRepository) Published() ([]Project, error) {
	return r.filter(func(p Project) bool { return p.Status == StatusPublished })
}

// Featured returns published projects flagged for the front page.
func (r *ProjectRepository) Featured() ([]Project, error) {
	return r.filter(func(p Project) bool { return p.Featured && p.Status == StatusPublished })
}

func (r *ProjectRepository) IncrementViews(id string) (*Project, error) {
	return r.Update(id, func(p *Project) { p.Views++ })
}

func (r *ProjectRepository) IncrementLikes(id string) (*Project, error) {
	return r.Update(id, func(p *Project) { p.Likes++ })
}

func (r *ProjectRepository) filter(keep func(Project) bool) ([]Project, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
