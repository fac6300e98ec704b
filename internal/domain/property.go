package domain

import (
	"strings"
	"time"
)

type Property struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	PropertyType  string    `json:"property_type"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Status        bool      `json:"status"`
	Img           string    `json:"img"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PropertyPatch carries the fields of a partial update. Nil means "leave as is".
type PropertyPatch struct {
	Title         *string
	Location      *string
	PropertyType  *string
	Description   *string
	PricePerNight *float64
	Status        *bool
	Img           *string
}

func (p PropertyPatch) Empty() bool {
	return p.Title == nil && p.Location == nil && p.PropertyType == nil &&
		p.Description == nil && p.PricePerNight == nil && p.Status == nil && p.Img == nil
}

type SortOrder int

const (
	SortAsc  SortOrder = 1
	SortDesc SortOrder = -1
)

type PropertyFilter struct {
	Title        string
	PropertyType string
	Location     string
}

type PropertyQuery struct {
	Filter    PropertyFilter
	SortBy    string
	SortOrder SortOrder
	Page      int
	PerPage   int
}

// Page describes where a listing slice sits in the full result set.
type Page struct {
	Number     int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Skip       int   `json:"-"`
}

// Paginate clamps the requested page against the total row count.
// Total pages are computed first (never below 1), then the page is clamped
// into [1, totalPages], then the skip offset is derived (never below 0).
func Paginate(total int64, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))
	skip := max(0, (page-1)*perPage)
	return Page{
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Skip:       skip,
	}
}

// DefaultSortField orders listings by nightly price.
const DefaultSortField = "price_per_night"

var propertySortFields = map[string]string{
	"price":           "price_per_night",
	"price_per_night": "price_per_night",
	"title":           "title",
	"location":        "location",
	"property_type":   "property_type",
	"status":          "status",
	"created_at":      "created_at",
}

// NormalizeSortField maps a sort_by value onto a sortable column.
// Empty input selects DefaultSortField.
func NormalizeSortField(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortField, true
	}
	col, ok := propertySortFields[s]
	return col, ok
}

// ParseSortOrder accepts 1/-1 as well as asc/desc. Empty means ascending.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "asc", "ascending":
		return SortAsc, true
	case "-1", "desc", "descending":
		return SortDesc, true
	default:
		return 0, false
	}
}
