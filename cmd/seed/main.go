package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cadastro/internal/config"
	"cadastro/internal/db"
	"cadastro/internal/model"
	"cadastro/internal/repository"
)

// SeedUserData represents one user entry in the seed file.
type SeedUserData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Profession string `json:"profession"`
	Address    *struct {
		Road        string `json:"road"`
		District    string `json:"district"`
		City        string `json:"city"`
		HouseNumber int    `json:"house_number"`
		Cep         string `json:"cep"`
		State       string `json:"state"`
		Complement  string `json:"complement"`
	} `json:"address"`
}

func main() {
	file := flag.String("file", "seed/users.json", "path to the seed JSON file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Address{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := loadSeedFile(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d users from %s", len(users), *file)

	userRepo := repository.NewUserRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)
	ctx := context.Background()

	created, skipped, err := seedUsers(ctx, userRepo, addressRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// loadSeedFile reads and parses the seed JSON file.
func loadSeedFile(path string) ([]SeedUserData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var users []SeedUserData
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers creates users (and their addresses, when present) that are not
// already registered. Existing emails are skipped, never overwritten.
func seedUsers(ctx context.Context, userRepo repository.UserRepository, addressRepo repository.AddressRepository, users []SeedUserData) (created int, skipped int, err error) {
	for _, item := range users {
		existing, err := userRepo.FindByEmail(ctx, item.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking user %s: %w", item.Email, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", item.Email, err)
		}

		user := &model.User{
			Name:         item.Name,
			Email:        item.Email,
			PasswordHash: string(hashed),
			Profession:   item.Profession,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", item.Email, err)
		}

		if item.Address != nil {
			address := &model.Address{
				Road:        item.Address.Road,
				District:    item.Address.District,
				City:        item.Address.City,
				HouseNumber: item.Address.HouseNumber,
				Cep:         item.Address.Cep,
				State:       item.Address.State,
				Complement:  item.Address.Complement,
				OwnerID:     user.ID,
			}
			if err := addressRepo.Create(ctx, address); err != nil {
				return created, skipped, fmt.Errorf("error creating address for %s: %w", item.Email, err)
			}
		}

		created++
	}
	return created, skipped, nil
}
