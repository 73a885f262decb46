package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blizzint/internal/config"
	"blizzint/internal/db"
	"blizzint/internal/model"
	"blizzint/internal/repository"
	"blizzint/internal/service"
)

const (
	defaultSeedFile  = "data/ski_resorts.json"
	adminEmail       = "admin@blizzint.app"
	adminName        = "Admin User"
	defaultAdminPass = "admin123"
	seedHashCost     = 10
)

func main() {
	seedFile := flag.String("resorts", defaultSeedFile, "path to ski resorts JSON file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Resort{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.EnsurePostGIS(gormDB); err != nil {
		log.Fatalf("Failed to set up PostGIS: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	resortRepo := repository.NewResortRepository(gormDB)

	if err := seedAdminUser(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	resorts, err := loadResorts(*seedFile)
	if err != nil {
		log.Fatalf("Failed to load resorts: %v", err)
	}
	log.Printf("Loaded %d resorts from %s", len(resorts), *seedFile)

	seeded, updated, err := seedResorts(ctx, resortRepo, resorts)
	if err != nil {
		log.Fatalf("Failed to seed resorts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New resorts created: %d", seeded)
	log.Printf("  - Existing resorts updated: %d", updated)
}

// seedAdminUser ensures the bootstrap admin account exists. The password
// comes from ADMIN_PASSWORD when set.
func seedAdminUser(ctx context.Context, repo repository.UserRepository) error {
	if _, err := repo.FindByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin user already present, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check admin user: %w", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPass
		log.Println("ADMIN_PASSWORD not set, using default development password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), seedHashCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         adminName,
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Println("Admin user created")
	return nil
}

// loadResorts reads the resort records from a JSON file.
func loadResorts(path string) ([]model.Resort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var resorts []model.Resort
	if err := json.Unmarshal(data, &resorts); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return resorts, nil
}

// seedResorts upserts resorts keyed by slug, deriving the slug from the name
// when the file omits it.
func seedResorts(ctx context.Context, repo repository.ResortRepository, resorts []model.Resort) (seeded int, updated int, err error) {
	for i := range resorts {
		resort := resorts[i]
		if resort.Slug == "" {
			resort.Slug = service.Slugify(resort.Name)
		}

		existing, err := repo.FindBySlug(ctx, resort.Slug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, updated, fmt.Errorf("error checking resort %s: %w", resort.Slug, err)
		}

		if existing != nil {
			resort.ID = existing.ID
			resort.CreatedAt = existing.CreatedAt
			if err := repo.Update(ctx, &resort); err != nil {
				return seeded, updated, fmt.Errorf("error updating resort %s: %w", resort.Slug, err)
			}
			updated++
		} else {
			if err := repo.Create(ctx, &resort); err != nil {
				return seeded, updated, fmt.Errorf("error creating resort %s: %w", resort.Slug, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
