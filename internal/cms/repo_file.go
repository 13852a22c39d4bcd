package cms

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type FileRepository struct {
	repo[StudyFile, *StudyFile]
}

func newFileRepository(kv store.KV, events *bus.Bus) *FileRepository {
	return &FileRepository{repo[StudyFile, *StudyFile]{
		collection: collection[StudyFile]{kv: kv, key: keyFiles, entity: bus.EntityFiles, events: events},
		onCreate: func(f *StudyFile) {
			f.UploadDate = time.Now().UTC().Format("2006-01-02")
			if f.Type == "" {
				f.Type = FileType(f.Name)
			}
		},
	}}
}

// FileType derives the display type from a file name's extension,
// e.g. "notes.pdf" -> "PDF".
func FileType(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return strings.ToUpper(ext)
}
