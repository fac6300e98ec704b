package booking

import (
	"context"

	"gorm.io/gorm"

	"rentalhub/internal/repository"
)

type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Bookings:   repository.NewBookingRepository(tx),
			Properties: repository.NewPropertyRepository(tx),
		})
	})
}
