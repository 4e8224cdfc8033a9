package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase serves product listing and detail pages.
type CatalogUseCase struct {
	items  repository.ItemRepository
	logger *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(store repository.Store, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{items: store.Items(), logger: logger}
}

// List returns every catalog item.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Item, error) {
	items, err := u.items.List(ctx)
	if err != nil {
		u.logger.Error("list items failed", "error", err)
		return nil, err
	}
	return items, nil
}

// Product returns the item with the given slug.
func (u *CatalogUseCase) Product(ctx context.Context, slug string) (*model.Item, error) {
	return findItem(ctx, u.items, slug)
}

func findItem(ctx context.Context, items repository.ItemRepository, slug string) (*model.Item, error) {
	item, err := items.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}
