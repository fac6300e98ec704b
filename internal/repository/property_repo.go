package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentalhub/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PropertyRepository) filtered(ctx context.Context, f domain.PropertyFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&propertyModel{})
	if f.Title != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Title)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	return q
}

// List counts the matching rows, clamps the page against that count and
// returns the sorted slice for the clamped page.
func (r *PropertyRepository) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, domain.Page, error) {
	var total int64
	if err := r.filtered(ctx, q.Filter).Count(&total).Error; err != nil {
		return nil, domain.Page{}, fmt.Errorf("count properties: %w", err)
	}
	page := domain.Paginate(total, q.Page, q.PerPage)

	col, ok := domain.NormalizeSortField(q.SortBy)
	if !ok {
		col = domain.DefaultSortField
	}
	dir := "ASC"
	if q.SortOrder == domain.SortDesc {
		dir = "DESC"
	}

	var rows []propertyModel
	err := r.filtered(ctx, q.Filter).
		Order(col + " " + dir).
		Order("id ASC").
		Offset(page.Skip).
		Limit(page.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, domain.Page{}, fmt.Errorf("list properties: %w", err)
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, page, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainProperty(m), nil
}

// LockByID loads the property and holds its row lock (SELECT ... FOR UPDATE)
// until the surrounding transaction ends. Ledger writes on one property are
// serialized through this lock. SQLite has no row locks; its single
// connection already serializes writers.
func (r *PropertyRepository) LockByID(ctx context.Context, id string) (*domain.Property, error) {
	var m propertyModel
	if err := lockProperty(r.db.WithContext(ctx), id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainProperty(m), nil
}

func lockProperty(db *gorm.DB, id string) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).Where("id = ?", id)
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	*p = *toDomainProperty(m)
	return nil
}

// Update writes only the fields present in the patch.
func (r *PropertyRepository) Update(ctx context.Context, id string, patch domain.PropertyPatch) error {
	fields := map[string]any{"updated_at": time.Now()}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.PropertyType != nil {
		fields["property_type"] = *patch.PropertyType
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.PricePerNight != nil {
		fields["price_per_night"] = *patch.PricePerNight
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.Img != nil {
		fields["img"] = *patch.Img
	}

	res := r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a property that no booking references. It returns
// ErrReferenced when bookings still point at it and ErrNotFound when the
// id is unknown.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.property_id = properties.id)").
		Delete(&propertyModel{})
	if res.Error != nil {
		return fmt.Errorf("delete property: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check property: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrReferenced
}

// RecomputeStatus derives availability from the booking set in a single
// statement: available exactly when no booking references the property.
func (r *PropertyRepository) RecomputeStatus(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE properties
		 SET status = NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.property_id = properties.id),
		     updated_at = ?
		 WHERE id = ?`,
		time.Now(), id,
	)
	if res.Error != nil {
		return fmt.Errorf("recompute property status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
