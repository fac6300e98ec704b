package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karlseguin/ccache/v3"

	"rentalhub/internal/domain"
	"rentalhub/internal/metrics"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/repository"
)

type listing struct {
	items []domain.Property
	page  domain.Page
}

type Service struct {
	properties PropertyRepository
	cache      *ccache.Cache[listing]
	cacheTTL   time.Duration
}

// NewService builds the catalog. A zero cacheTTL disables the listing cache.
func NewService(properties PropertyRepository, cacheTTL time.Duration) *Service {
	s := &Service{properties: properties, cacheTTL: cacheTTL}
	if cacheTTL > 0 {
		s.cache = ccache.New(ccache.Configure[listing]().MaxSize(1000))
	}
	return s
}

// Close stops the listing cache janitor.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// Invalidate drops every cached listing. Called after any catalog or ledger write.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func cacheKey(q domain.PropertyQuery) string {
	return fmt.Sprintf("%q|%q|%q|%s|%d|%d|%d",
		q.Filter.Title, q.Filter.PropertyType, q.Filter.Location,
		q.SortBy, q.SortOrder, q.Page, q.PerPage)
}

func (s *Service) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, domain.Page, error) {
	key := cacheKey(q)
	if s.cache != nil {
		if item := s.cache.Get(key); item != nil && !item.Expired() {
			metrics.IncListingCache(true)
			v := item.Value()
			return append([]domain.Property(nil), v.items...), v.page, nil
		}
		metrics.IncListingCache(false)
	}

	items, page, err := s.properties.List(ctx, q)
	if err != nil {
		return nil, domain.Page{}, err
	}

	if s.cache != nil {
		s.cache.Set(key, listing{items: append([]domain.Property(nil), items...), page: page}, s.cacheTTL)
	}
	return items, page, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	p := req.toDomain()
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	s.Invalidate()

	logger.WithContext(ctx).Info("property created", "property_id", p.ID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.PropertyPatch) error {
	if patch.Empty() {
		return ErrEmptyPatch
	}
	if err := s.properties.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}
	s.Invalidate()
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrPropertyNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrPropertyHasBookings
		}
		return err
	}
	s.Invalidate()

	logger.WithContext(ctx).Info("property deleted", "property_id", id)
	return nil
}
