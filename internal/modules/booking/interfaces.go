package booking

import (
	"context"

	"rentalhub/internal/domain"
)

// BookingRepository defines the booking operations the ledger needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// PropertyRepository defines the property operations the ledger needs.
// LockByID must hold the property row until the transaction ends so that
// concurrent ledger writes on one property run one after another.
type PropertyRepository interface {
	LockByID(ctx context.Context, id string) (*domain.Property, error)
	RecomputeStatus(ctx context.Context, id string) error
}

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Bookings   BookingRepository
	Properties PropertyRepository
}

// UnitOfWork runs fn inside a single store transaction. A non-nil error
// from fn rolls the transaction back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Repos) error) error
}

// ListingInvalidator drops cached property listings after availability changes.
type ListingInvalidator interface {
	Invalidate()
}
