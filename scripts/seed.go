package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vodomont/backend/internal/adapters/database"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	"github.com/vodomont/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	testimonialRepo := database.NewTestimonialAdapter(pgClient)
	settingsRepo := database.NewSettingsAdapter(pgClient)
	adminRepo := database.NewAdminUserAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				photos,
				testimonials,
				contact_inquiries,
				site_settings,
				admin_users,
				page_views,
				notifications
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed site settings
	settings := entities.DefaultSiteSettings()
	settings.Phone = "+381 60 123 4567"
	settings.Email = "kontakt@vodomont.rs"
	settings.Address = "Bulevar oslobodjenja 12, Novi Sad"
	settings.WorkingHours = "Pon-Pet 08-20, Sub 09-15"
	settings.EmergencyAvailable = true
	if err := settingsRepo.Upsert(ctx, settings); err != nil {
		log.Printf("Failed to seed settings: %v", err)
	}

	// 2. Seed testimonials (already moderated so the public site has content)
	testimonials := []entities.Testimonial{
		{ID: uuid.New().String(), Name: "Marko P.", Text: "Brza intervencija, curenje sanirano za sat vremena. Sve preporuke.", Rating: 5, Service: "Hitna intervencija", Location: "Novi Sad", IsPublished: true, IsFeatured: true, CreatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Jovana S.", Text: "Kompletna zamena cevi u kupatilu, uredno i bez prasine. Cena kao iz dogovora.", Rating: 5, Service: "Renoviranje kupatila", Location: "Petrovaradin", IsPublished: true, IsFeatured: true, CreatedAt: time.Now().Add(-24 * time.Hour)},
		{ID: uuid.New().String(), Name: "Nenad K.", Text: "Zamena bojlera zavrsena isti dan. Profesionalno i korektno.", Rating: 4, Service: "Zamena bojlera", Location: "Novi Sad", IsPublished: true, CreatedAt: time.Now().Add(-48 * time.Hour)},
		{ID: uuid.New().String(), Name: "Ana M.", Text: "Dosli su u dogovoreno vreme i resili problem sa niskim pritiskom vode.", Rating: 5, Location: "Sremska Kamenica", CreatedAt: time.Now().Add(-72 * time.Hour)},
	}

	for _, t := range testimonials {
		if err := testimonialRepo.Create(ctx, &t); err != nil {
			log.Printf("Failed to create testimonial from %s: %v", t.Name, err)
			continue
		}
		if t.IsPublished {
			if _, err := testimonialRepo.SetPublished(ctx, t.ID, true); err != nil {
				log.Printf("Failed to publish testimonial from %s: %v", t.Name, err)
			}
		}
		if t.IsFeatured {
			if _, err := testimonialRepo.SetFeatured(ctx, t.ID, true); err != nil {
				log.Printf("Failed to feature testimonial from %s: %v", t.Name, err)
			}
		}
	}

	// 3. Seed the admin account when configured
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		authService := services.NewAuthService(adminRepo, nil)
		if _, err := authService.CreateAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Printf("Admin account not created: %v", err)
		} else {
			log.Printf("Admin account %q created", cfg.Admin.Username)
		}
	}

	log.Println("Seeding complete")
}
