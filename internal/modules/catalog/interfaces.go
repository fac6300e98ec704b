package catalog

import (
	"context"

	"rentalhub/internal/domain"
)

// PropertyRepository is the subset of repository.PropertyRepository the catalog uses.
type PropertyRepository interface {
	List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, domain.Page, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, id string, patch domain.PropertyPatch) error
	Delete(ctx context.Context, id string) error
}
