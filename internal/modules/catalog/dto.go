package catalog

import (
	"strconv"
	"time"

	"rentalhub/internal/domain"
)

const (
	DefaultPerPage = 9
	MaxPerPage     = 100
)

// ListQuery is bound from the GET /api/properties query string.
type ListQuery struct {
	Title        string `form:"title"`
	PropertyType string `form:"property_type"`
	Location     string `form:"location"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
	Page         *int   `form:"page"`
	PerPage      *int   `form:"per_page" validate:"omitempty,min=1,max=100"`
}

func (q ListQuery) toDomain() (domain.PropertyQuery, error) {
	col, ok := domain.NormalizeSortField(q.SortBy)
	if !ok {
		return domain.PropertyQuery{}, ErrInvalidQuery
	}
	order, ok := domain.ParseSortOrder(q.SortOrder)
	if !ok {
		return domain.PropertyQuery{}, ErrInvalidQuery
	}

	page := 1
	if q.Page != nil {
		page = *q.Page
	}
	perPage := DefaultPerPage
	if q.PerPage != nil {
		perPage = *q.PerPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		return domain.PropertyQuery{}, ErrInvalidQuery
	}

	return domain.PropertyQuery{
		Filter: domain.PropertyFilter{
			Title:        q.Title,
			PropertyType: q.PropertyType,
			Location:     q.Location,
		},
		SortBy:    col,
		SortOrder: order,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

type CreatePropertyRequest struct {
	Title         string         `json:"title" binding:"required"`
	Location      string         `json:"location" binding:"required"`
	PropertyType  string         `json:"property_type" binding:"required"`
	Description   string         `json:"description"`
	PricePerNight *domain.Amount `json:"price_per_night" binding:"required,gte=0"`
	Status        *bool          `json:"status"`
	Img           string         `json:"img"`
}

func (r CreatePropertyRequest) toDomain() *domain.Property {
	p := &domain.Property{
		Title:        r.Title,
		Location:     r.Location,
		PropertyType: r.PropertyType,
		Description:  r.Description,
		Status:       true,
		Img:          r.Img,
	}
	if r.PricePerNight != nil {
		p.PricePerNight = float64(*r.PricePerNight)
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	return p
}

// UpdatePropertyRequest holds a partial update; unknown JSON fields are ignored.
type UpdatePropertyRequest struct {
	Title         *string        `json:"title"`
	Location      *string        `json:"location"`
	PropertyType  *string        `json:"property_type"`
	Description   *string        `json:"description"`
	PricePerNight *domain.Amount `json:"price_per_night" binding:"omitempty,gte=0"`
	Status        *bool          `json:"status"`
	Img           *string        `json:"img"`
}

func (r UpdatePropertyRequest) Patch() domain.PropertyPatch {
	return domain.PropertyPatch{
		Title:         r.Title,
		Location:      r.Location,
		PropertyType:  r.PropertyType,
		Description:   r.Description,
		PricePerNight: r.PricePerNight.Float64Ptr(),
		Status:        r.Status,
		Img:           r.Img,
	}
}

// ListItem is the listing representation: every field rendered as a string.
type ListItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Location      string `json:"location"`
	PropertyType  string `json:"property_type"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	Status        string `json:"status"`
	Img           string `json:"img"`
}

func NewListItem(p domain.Property) ListItem {
	return ListItem{
		ID:            p.ID,
		Title:         p.Title,
		Location:      p.Location,
		PropertyType:  p.PropertyType,
		Description:   p.Description,
		PricePerNight: FormatPrice(p.PricePerNight),
		Status:        strconv.FormatBool(p.Status),
		Img:           p.Img,
	}
}

type PropertyResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Location      string `json:"location"`
	PropertyType  string `json:"property_type"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	Status        bool   `json:"status"`
	Img           string `json:"img"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func NewPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Location:      p.Location,
		PropertyType:  p.PropertyType,
		Description:   p.Description,
		PricePerNight: FormatPrice(p.PricePerNight),
		Status:        p.Status,
		Img:           p.Img,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FormatPrice renders an amount with the shortest exact decimal form.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
