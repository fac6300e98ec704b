package domain

import "time"

// DateLayout is the wire and storage format of booking dates.
const DateLayout = "2006-01-02"

// Booking references a property by id and keeps a snapshot of the
// property's display fields taken when the booking was made.
type Booking struct {
	ID               string    `json:"booking_id"`
	PropertyID       string    `json:"property_id"`
	PropertyTitle    string    `json:"property_title"`
	PricePerNight    float64   `json:"price_per_night"`
	PropertyLocation string    `json:"property_location"`
	PropertyImg      string    `json:"property_img"`
	BookDate         time.Time `json:"book_date"`
	EndDate          time.Time `json:"end_date"`
	CreatedAt        time.Time `json:"created_at"`
}

// Nights is the number of nights covered by the stay.
func (b Booking) Nights() int {
	return int(b.EndDate.Sub(b.BookDate).Hours() / 24)
}

// FillSnapshot copies display fields from p into every empty snapshot field.
func (b *Booking) FillSnapshot(p *Property) {
	if p == nil {
		return
	}
	if b.PropertyTitle == "" {
		b.PropertyTitle = p.Title
	}
	if b.PricePerNight == 0 {
		b.PricePerNight = p.PricePerNight
	}
	if b.PropertyLocation == "" {
		b.PropertyLocation = p.Location
	}
	if b.PropertyImg == "" {
		b.PropertyImg = p.Img
	}
}
