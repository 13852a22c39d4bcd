package cms

import (
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type SummaryRepository struct {
	repo[Summary, *Summary]
}

func newSummaryRepository(kv store.KV, events *bus.Bus) *SummaryRepository {
	return &SummaryRepository{repo[Summary, *Summary]{
		collection: collection[Summary]{kv: kv, key: keySummaries, entity: bus.EntitySummaries, events: events},
	}}
}
