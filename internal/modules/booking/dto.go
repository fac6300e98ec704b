package booking

import (
	"strconv"
	"time"

	"rentalhub/internal/domain"
)

type CreateBookingRequest struct {
	PropertyID       string        `json:"property_id"`
	PropertyTitle    string        `json:"property_title"`
	PricePerNight    domain.Amount `json:"price_per_night" binding:"gte=0"`
	PropertyLocation string        `json:"property_location"`
	PropertyImg      string        `json:"property_img"`
	BookDate         string        `json:"book_date" binding:"required"`
	EndDate          string        `json:"end_date" binding:"required"`
}

// BookingResponse renders every field as a string.
type BookingResponse struct {
	BookingID        string `json:"booking_id"`
	PropertyID       string `json:"property_id"`
	PropertyTitle    string `json:"property_title"`
	PricePerNight    string `json:"price_per_night"`
	PropertyLocation string `json:"property_location"`
	PropertyImg      string `json:"property_img"`
	BookDate         string `json:"book_date"`
	EndDate          string `json:"end_date"`
}

func NewBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:        b.ID,
		PropertyID:       b.PropertyID,
		PropertyTitle:    b.PropertyTitle,
		PricePerNight:    strconv.FormatFloat(b.PricePerNight, 'f', -1, 64),
		PropertyLocation: b.PropertyLocation,
		PropertyImg:      b.PropertyImg,
		BookDate:         formatDate(b.BookDate),
		EndDate:          formatDate(b.EndDate),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
