// Package saved implements the saved-article side of the sync layer.
package saved

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/domain"
	"github.com/newskeeper/newskeeper/internal/dto"
	"github.com/newskeeper/newskeeper/internal/storage/pg"
	"github.com/newskeeper/newskeeper/pkg/pagination"
)

// Store is the persistence surface for saved articles. The Save
// implementation must be atomic with respect to the (account, newsId)
// uniqueness invariant: two concurrent saves of the same article must
// yield exactly one row, with the loser reported as pg.ErrAlreadySaved.
type Store interface {
	Save(ctx context.Context, article domain.SavedArticle) (domain.SavedArticle, error)
	List(ctx context.Context, accountID uuid.UUID, page *pagination.OffsetRequest) (*pagination.OffsetResult[domain.SavedArticle], error)
	ListNewsIDs(ctx context.Context, accountID uuid.UUID) (map[string]struct{}, error)
	Delete(ctx context.Context, id uuid.UUID, accountID uuid.UUID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save validates the input, then writes. Missing required fields fail
// fast with no write at all. A duplicate is not an error: it comes back
// as a result with Success=false and an "already saved" message.
func (s *Service) Save(ctx context.Context, accountID uuid.UUID, input dto.SaveArticleRequest) (*domain.SaveResult, error) {
	if input.Title == "" || input.NewsID == "" || input.Description == "" || input.Link == "" {
		return nil, apperr.NewValidation("title, newsId, description and link are required")
	}

	article, err := s.store.Save(ctx, domain.SavedArticle{
		AccountID:   accountID,
		NewsID:      input.NewsID,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		LinkPhoto:   input.LinkPhoto,
		IsFavourite: false,
	})
	if err != nil {
		if errors.Is(err, pg.ErrAlreadySaved) {
			return &domain.SaveResult{
				Success: false,
				Message: "news already saved",
			}, nil
		}
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	return &domain.SaveResult{
		Success: true,
		Message: "news saved successfully",
		Article: &article,
	}, nil
}

// List returns the account's saved articles, bounded by offset
// pagination.
func (s *Service) List(ctx context.Context, accountID uuid.UUID, page *pagination.OffsetRequest) (*pagination.OffsetResult[domain.SavedArticle], error) {
	if err := page.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid pagination", err)
	}

	result, err := s.store.List(ctx, accountID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved articles: %w", err)
	}

	return result, nil
}

// SavedSet returns the news ids the account has saved, for headline
// membership annotation.
func (s *Service) SavedSet(ctx context.Context, accountID uuid.UUID) (map[string]struct{}, error) {
	ids, err := s.store.ListNewsIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved set: %w", err)
	}
	return ids, nil
}

// Delete removes one saved article owned by the account.
func (s *Service) Delete(ctx context.Context, accountID uuid.UUID, id uuid.UUID) error {
	err := s.store.Delete(ctx, id, accountID)
	if err != nil {
		if errors.Is(err, pg.ErrSavedNotFound) {
			return apperr.NewNotFound("saved article not found")
		}
		return fmt.Errorf("failed to delete saved article: %w", err)
	}
	return nil
}
