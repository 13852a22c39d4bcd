package cms

import (
	"github.com/gosimple/slug"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

type BlogPostRepository struct {
	repo[BlogPost, *BlogPost]
}

func newBlogPostRepository(kv store.KV, events *bus.Bus) *BlogPostRepository {
	return &BlogPostRepository{repo[BlogPost, *BlogPost]{
		collection: collection[BlogPost]{kv: kv, key: keyBlogPosts, entity: bus.EntityBlogPosts, events: events},
		onCreate: func(p *BlogPost) {
			p.Views = 0
			p.Likes = 0
			if p.Slug == "" {
				p.Slug = DeriveSlug(p.Title)
			}
		},
	}}
}

// DeriveSlug turns a title into its URL-safe form: lowercased,
// punctuation stripped, runs of whitespace and hyphens collapsed to a
// single hyphen, trimmed. Underscores survive as-is and non-ASCII
// letters are transliterated rather than dropped, so "Go_Lang" yields
// "go_lang" and "Crème" yields "creme".
func DeriveSlug(title string) string {
	return slug.Make(title)
}

// Update re-derives the slug from the title when a mutation clears it.
func (r *BlogPostRepository) Update(id string, mutate func(*BlogPost)) (*BlogPost, error) {
	return r.repo.Update(id, func(p *BlogPost) {
		mutate(p)
		if p.Slug == "" {
			p.Slug = DeriveSlug(p.Title)
		}
	})
}

func (r *BlogPostRepository) GetBySlug(postSlug string) (*BlogPost, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Slug == postSlug {
			p := items[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Published returns posts visible on the public site.
func (r *BlogPostRepository) Published() ([]BlogPost, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make([]BlogPost, 0, len(items))
	for _, p := range items {
		if p.Status == StatusPublished {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *BlogPostRepository) IncrementViews(id string) (*BlogPost, error) {
	return r.Update(id, func(p *BlogPost) { p.Views++ })
}

func (r *BlogPostRepository) IncrementLikes(id string) (*BlogPost, error) {
	return r.Update(id, func(p *BlogPost) { p.Likes++ })
}
