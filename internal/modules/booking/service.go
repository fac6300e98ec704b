package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentalhub/internal/domain"
	"rentalhub/internal/events"
	"rentalhub/internal/metrics"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/repository"
)

type Service struct {
	uow       UnitOfWork
	bookings  BookingRepository
	listings  ListingInvalidator
	publisher events.Publisher
	now       func() time.Time
}

func NewService(
	uow UnitOfWork,
	bookings BookingRepository,
	listings ListingInvalidator,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		uow:       uow,
		bookings:  bookings,
		listings:  listings,
		publisher: publisher,
		now:       time.Now,
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return t, nil
}

// CreateBooking inserts the booking and marks the referenced property
// unavailable in one transaction.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	start, err := parseDate(req.BookDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		PropertyID:       strings.TrimSpace(req.PropertyID),
		PropertyTitle:    req.PropertyTitle,
		PricePerNight:    float64(req.PricePerNight),
		PropertyLocation: req.PropertyLocation,
		PropertyImg:      req.PropertyImg,
		BookDate:         start,
		EndDate:          end,
	}

	err = s.uow.Do(ctx, func(r Repos) error {
		if b.PropertyID != "" {
			p, err := r.Properties.LockByID(ctx, b.PropertyID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrPropertyNotFound
				}
				return err
			}
			b.FillSnapshot(p)
		}

		if err := r.Bookings.Create(ctx, b); err != nil {
			return err
		}

		if b.PropertyID != "" {
			return r.Properties.RecomputeStatus(ctx, b.PropertyID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite()
	metrics.IncBookingCreated()
	s.publish(ctx, events.BookingCreated, b)

	logger.WithContext(ctx).Info("booking created",
		"booking_id", b.ID,
		"property_id", b.PropertyID,
		"nights", b.Nights(),
	)
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// DeleteBooking removes the booking and, when a row was actually removed,
// re-derives the property's availability from the remaining bookings.
func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	var deleted *domain.Booking

	err := s.uow.Do(ctx, func(r Repos) error {
		b, err := r.Bookings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		// a dangling property_id is not an error
		locked := false
		if b.PropertyID != "" {
			_, err := r.Properties.LockByID(ctx, b.PropertyID)
			switch {
			case err == nil:
				locked = true
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}

		n, err := r.Bookings.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n != 1 {
			return ErrBookingNotFound
		}

		if locked {
			if err := r.Properties.RecomputeStatus(ctx, b.PropertyID); err != nil {
				return err
			}
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}

	s.afterWrite()
	metrics.IncBookingDeleted()
	s.publish(ctx, events.BookingDeleted, deleted)

	logger.WithContext(ctx).Info("booking deleted", "booking_id", id, "property_id", deleted.PropertyID)
	return nil
}

func (s *Service) afterWrite() {
	if s.listings != nil {
		s.listings.Invalidate()
	}
}

func (s *Service) publish(ctx context.Context, subject string, b *domain.Booking) {
	ev := events.BookingEvent{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		BookDate:   formatDate(b.BookDate),
		EndDate:    formatDate(b.EndDate),
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, subject, ev); err != nil {
		logger.WithContext(ctx).Warn("failed to publish booking event", "subject", subject, "error", err)
	}
}
