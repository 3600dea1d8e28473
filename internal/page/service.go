package page

import (
	"context"
	"errors"
	"time"

	"bramble/internal/models"
	"bramble/internal/store"
)

// Service manages wiki pages on top of the cache-backed pages collection.
type Service struct {
	pages *store.Collection[models.Page]
}

// NewService creates a new page service.
func NewService(pages *store.Collection[models.Page]) *Service {
	return &Service{pages: pages}
}

// Create builds a page value without persisting it. Version stays unset
// until Save assigns one.
func (s *Service) Create(url, subject, content, createdBy string) models.Page {
	now := time.Now().UTC()
	return models.Page{
		URL:        url,
		Subject:    subject,
		Content:    content,
		CreatedBy:  createdBy,
		Created:    now,
		LastEdited: now,
	}
}

// Get returns the latest revision of the page at url.
func (s *Service) Get(ctx context.Context, url string) (models.Page, error) {
	return s.pages.Get(ctx, url)
}

// Save persists a new revision of the page at url. Version is one greater
// than the stored revision, or 1 for a brand-new page. Created and CreatedBy
// stick from the first insert; editor only attributes new pages. Empty
// content is a valid page, not an error.
func (s *Service) Save(ctx context.Context, url, subject, content, editor string) (models.Page, error) {
	now := time.Now().UTC()
	page := models.Page{
		URL:        url,
		Subject:    subject,
		Content:    content,
		CreatedBy:  editor,
		Created:    now,
		LastEdited: now,
		Version:    1,
	}

	prev, err := s.pages.Get(ctx, url)
	switch {
	case err == nil:
		page.CreatedBy = prev.CreatedBy
		page.Created = prev.Created
		page.Version = prev.Version + 1
	case errors.Is(err, store.ErrNotFound):
		// First revision.
	default:
		return models.Page{}, err
	}

	if err := s.pages.Put(ctx, url, page); err != nil {
		return models.Page{}, err
	}
	return page, nil
}
