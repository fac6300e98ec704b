package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/repository"
)

type seedAccount struct {
	role     domain.UserRole
	email    string
	password string
}

var accounts = []seedAccount{
	{domain.RoleHost, "host@rentalhub.local", "host123"},
	{domain.RoleGuest, "guest@rentalhub.local", "guest123"},
}

var properties = []domain.Property{
	{Title: "Harbour View Loft", Location: "Lisbon", PropertyType: "apartment", PricePerNight: 95, Img: "lisbon-loft.jpg", Description: "Top floor loft over the river."},
	{Title: "Pine Cabin", Location: "Oslo", PropertyType: "cabin", PricePerNight: 70, Img: "oslo-cabin.jpg", Description: "Wood stove and sauna."},
	{Title: "Old Town Studio", Location: "Prague", PropertyType: "studio", PricePerNight: 45, Img: "prague-studio.jpg", Description: "Two minutes from the square."},
	{Title: "Cliffside Villa", Location: "Santorini", PropertyType: "villa", PricePerNight: 310, Img: "santorini-villa.jpg", Description: "Private pool, sunset terrace."},
	{Title: "Canal House", Location: "Amsterdam", PropertyType: "house", PricePerNight: 180, Img: "amsterdam-house.jpg", Description: "Three floors on the Prinsengracht."},
	{Title: "Desert Hotel Suite", Location: "Marrakech", PropertyType: "hotel", PricePerNight: 120, Img: "marrakech-suite.jpg", Description: "Riad suite with breakfast."},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN(), database.Options{Debug: cfg.Debug})
	if err != nil {
		logger.Error("DB connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	creds := repository.NewCredentialRepository(db)
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("hash failed", "error", err)
			os.Exit(1)
		}
		err = creds.Create(ctx, &domain.Credential{Role: a.role, Email: a.email, PasswordHash: string(hash)})
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			logger.Info("account exists", "role", a.role, "email", a.email)
		case err != nil:
			logger.Error("account create failed", "email", a.email, "error", err)
			os.Exit(1)
		default:
			logger.Info("account created", "role", a.role, "email", a.email, "password", a.password)
		}
	}

	props := repository.NewPropertyRepository(db)
	_, page, err := props.List(ctx, domain.PropertyQuery{SortBy: domain.DefaultSortField, SortOrder: domain.SortAsc, Page: 1, PerPage: 1})
	if err != nil {
		logger.Error("listing failed", "error", err)
		os.Exit(1)
	}
	if page.Total > 0 {
		logger.Info("properties already seeded", "count", page.Total)
		return
	}

	for i := range properties {
		p := properties[i]
		p.Status = true
		if err := props.Create(ctx, &p); err != nil {
			logger.Error("property create failed", "title", p.Title, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("seed complete", "properties", len(properties))
}
