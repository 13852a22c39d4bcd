package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

// CMS aggregates the entity repositories over one shared key-value
// store. Every mutating call goes repository -> store write -> bus
// broadcast, and subscribers re-read from the store.
type CMS struct {
	kv     store.KV
	events *bus.Bus

	Projects    *ProjectRepository
	Experiences *ExperienceRepository
	Skills      *SkillRepository
	Education   *EducationRepository
	Settings    *SettingsRepository
	BlogPosts   *BlogPostRepository
	Files       *FileRepository
	Summaries   *SummaryRepository
	Analytics   *AnalyticsRepository
}

func New(kv store.KV, events *bus.Bus) *CMS {
	return &CMS{
		kv:     kv,
		events: events,

		Projects:    newProjectRepository(kv, events),
		Experiences: newExperienceRepository(kv, events),
		Skills:      newSkillRepository(kv, events),
		Education:   newEducationRepository(kv, events),
		Settings:    newSettingsRepository(kv, events),
		BlogPosts:   newBlogPostRepository(kv, events),
		Files:       newFileRepository(kv, events),
		Summaries:   newSummaryRepository(kv, events),
		Analytics:   newAnalyticsRepository(kv, events),
	}
}
