package repository

import (
	"time"

	"rentalhub/internal/domain"
)

type propertyModel struct {
	ID            string    `gorm:"column:id;primaryKey;size:36"`
	Title         string    `gorm:"column:title;not null"`
	Location      string    `gorm:"column:location;index"`
	PropertyType  string    `gorm:"column:property_type;index"`
	Description   string    `gorm:"column:description;type:text"`
	PricePerNight float64   `gorm:"column:price_per_night;not null;index"`
	Status        bool      `gorm:"column:status;not null"`
	Img           string    `gorm:"column:img"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

type bookingModel struct {
	ID               string    `gorm:"column:id;primaryKey;size:36"`
	PropertyID       string    `gorm:"column:property_id;size:36;index"`
	PropertyTitle    string    `gorm:"column:property_title"`
	PricePerNight    float64   `gorm:"column:price_per_night"`
	PropertyLocation string    `gorm:"column:property_location"`
	PropertyImg      string    `gorm:"column:property_img"`
	BookDate         string    `gorm:"column:book_date;size:10;not null"`
	EndDate          string    `gorm:"column:end_date;size:10;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
}

func (bookingModel) TableName() string { return "bookings" }

// CredentialRow is the shared column set of the hosts and guests tables.
// gorm ignores unexported embedded fields, so the type must stay exported.
type CredentialRow struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Email        string    `gorm:"column:email;size:320;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// hostModel and guestModel exist only so each role gets its own table
// and its own unique email index.
type hostModel struct {
	CredentialRow `gorm:"embedded"`
}

func (hostModel) TableName() string { return "hosts" }

type guestModel struct {
	CredentialRow `gorm:"embedded"`
}

func (guestModel) TableName() string { return "guests" }

// Models lists every table the repositories need, for AutoMigrate.
func Models() []any {
	return []any{
		&hostModel{},
		&guestModel{},
		&propertyModel{},
		&bookingModel{},
	}
}

func credentialTable(role domain.UserRole) string {
	if role == domain.RoleHost {
		return hostModel{}.TableName()
	}
	return guestModel{}.TableName()
}

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:            m.ID,
		Title:         m.Title,
		Location:      m.Location,
		PropertyType:  m.PropertyType,
		Description:   m.Description,
		PricePerNight: m.PricePerNight,
		Status:        m.Status,
		Img:           m.Img,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	return propertyModel{
		ID:            p.ID,
		Title:         p.Title,
		Location:      p.Location,
		PropertyType:  p.PropertyType,
		Description:   p.Description,
		PricePerNight: p.PricePerNight,
		Status:        p.Status,
		Img:           p.Img,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDomainBooking(m bookingModel) *domain.Booking {
	// Dates are validated on the way in; a malformed legacy value decodes
	// to the zero time rather than failing the whole listing.
	book, _ := time.Parse(domain.DateLayout, m.BookDate)
	end, _ := time.Parse(domain.DateLayout, m.EndDate)
	return &domain.Booking{
		ID:               m.ID,
		PropertyID:       m.PropertyID,
		PropertyTitle:    m.PropertyTitle,
		PricePerNight:    m.PricePerNight,
		PropertyLocation: m.PropertyLocation,
		PropertyImg:      m.PropertyImg,
		BookDate:         book,
		EndDate:          end,
		CreatedAt:        m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:               b.ID,
		PropertyID:       b.PropertyID,
		PropertyTitle:    b.PropertyTitle,
		PricePerNight:    b.PricePerNight,
		PropertyLocation: b.PropertyLocation,
		PropertyImg:      b.PropertyImg,
		BookDate:         b.BookDate.Format(domain.DateLayout),
		EndDate:          b.EndDate.Format(domain.DateLayout),
		CreatedAt:        b.CreatedAt,
	}
}

func toDomainCredential(role domain.UserRole, m CredentialRow) *domain.Credential {
	return &domain.Credential{
		ID:           m.ID,
		Role:         role,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
