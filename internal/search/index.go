package search

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
)

// Document is the search-index view of a published project or blog post.
type Document struct {
	ID       string
	Kind     string // "project" or "post"
	Title    string
	Body     string
	Excerpt  string
	Tags     []string
	Category string
	Slug     string
}

type Result struct {
	ID        string
	Kind      string
	Title     string
	Slug      string
	Score     float64
	Fragments map[string][]string
}

// Index searches the published portfolio content. It is rebuilt from
// the repositories, never treated as a source of truth.
type Index struct {
	idx     bleve.Index
	content *cms.CMS

	mu sync.Mutex
}

func Open(path string, content *cms.CMS) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &Index{idx: idx, content: content}, nil
}

// OpenMem builds an in-memory index, used by tests.
func OpenMem(content *cms.CMS) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &Index{idx: idx, content: content}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	titleMapping := bleve.NewTextFieldMapping()
	titleMapping.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("ID", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Kind", bleve.NewKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("Title", titleMapping)
	docMapping.AddFieldMappingsAt("Body", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Excerpt", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Tags", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Category", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Slug", bleve.NewKeywordFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

func (i *Index) Close() error {
	return i.idx.Close()
}

// Rebuild reindexes every published project and blog post, and drops
// documents that are no longer published.
func (i *Index) Rebuild() error {
	projects, err := i.content.Projects.Published()
	if err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}
	posts, err := i.content.BlogPosts.Published()
	if err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	docs := make([]Document, 0, len(projects)+len(posts))
	for _, p := range projects {
		docs = append(docs, Document{
			ID:       p.ID,
			Kind:     "project",
			Title:    p.Title,
			Body:     p.Description + "\n" + p.LongDescription,
			Tags:     p.Tech,
			Category: p.Category,
		})
	}
	for _, p := range posts {
		docs = append(docs, Document{
			ID:       p.ID,
			Kind:     "post",
			Title:    p.Title,
			Body:     p.Content,
			Excerpt:  p.Excerpt,
			Tags:     p.Tags,
			Category: p.Category,
			Slug:     p.Slug,
		})
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.idx.NewBatch()
	current := make(map[string]bool, len(docs))
	for _, doc := range docs {
		current[doc.ID] = true
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("rebuild search index: index %s: %w", doc.ID, err)
		}
	}
	indexed, err := i.indexedIDs()
	if err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}
	for _, id := range indexed {
		if !current[id] {
			batch.Delete(id)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("rebuild search index: commit batch: %w", err)
	}
	return nil
}

// indexedIDs walks every document id currently stored in the index.
// The index persists across restarts, so the stale set cannot be
// tracked in memory: content deleted or unpublished while the process
// was down is only visible by asking the index itself.
func (i *Index) indexedIDs() ([]string, error) {
	var ids []string
	for from := 0; ; {
		request := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 500, from, false)
		found, err := i.idx.Search(request)
		if err != nil {
			return nil, fmt.Errorf("list indexed ids: %w", err)
		}
		if len(found.Hits) == 0 {
			return ids, nil
		}
		for _, hit := range found.Hits {
			ids = append(ids, hit.ID)
		}
		from += len(found.Hits)
	}
}

// Search runs a query-string query (quotes, boolean operators and
// fuzzy ~ are supported) with highlighted fragments.
func (i *Index) Search(queryStr string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewQueryStringQuery(queryStr)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)
	request.Highlight = bleve.NewHighlightWithStyle("html")
	request.Fields = []string{"Title", "Kind", "Slug"}

	found, err := i.idx.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]Result, 0, len(found.Hits))
	for _, hit := range found.Hits {
		result := Result{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		}
		if title, ok := hit.Fields["Title"].(string); ok {
			result.Title = title
		}
		if kind, ok := hit.Fields["Kind"].(string); ok {
			result.Kind = kind
		}
		if postSlug, ok := hit.Fields["Slug"].(string); ok {
			result.Slug = postSlug
		}
		results = append(results, result)
	}
	return results, nil
}

func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

// Watch reindexes whenever the bus announces a change to projects or
// blog posts, or an external write of unknown shape.
func (i *Index) Watch(ctx context.Context, events *bus.Bus) {
	ch, cancel := events.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			switch ev.Entity {
			case bus.EntityProjects, bus.EntityBlogPosts, bus.EntityAny:
				if err := i.Rebuild(); err != nil {
					log.Printf("search: reindex: %v", err)
				}
			}
		}
	}
}
