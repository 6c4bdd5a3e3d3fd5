package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"devonxona/internal/config"
	"devonxona/internal/domain"
	"devonxona/internal/repository/postgres"
)

// Seeds the departments and a starter account per role so a fresh install
// can exercise the whole workflow. Idempotent: existing emails are skipped.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deptRepo := postgres.NewDepartmentRepo(db)
	userRepo := postgres.NewUserRepo(db)

	departments := []domain.Department{
		{Name: "Yuridik boshqarma", ReviewRequired: true},
		{Name: "Moliyaviy monitoring", ReviewRequired: true},
		{Name: "Axborot texnologiyalari", ReviewRequired: false},
		{Name: "Bank apparati", ReviewRequired: false},
	}
	for i := range departments {
		departments[i].ID = uuid.New()
		if err := deptRepo.Create(ctx, &departments[i]); err != nil {
			log.Printf("seed: department %q: %v", departments[i].Name, err)
			continue
		}
		log.Printf("seed: department %q created", departments[i].Name)
	}

	type seedUser struct {
		email      string
		fullName   string
		role       domain.UserRole
		department string
	}
	seedUsers := []seedUser{
		{"admin@bank.uz", "Tizim administratori", domain.RoleAdmin, ""},
		{"boshqaruv@bank.uz", "Boshqaruv raisi o'rinbosari", domain.RoleBoshqaruv, ""},
		{"yuridik@bank.uz", "Yuridik boshqarma boshlig'i", domain.RoleTarmoq, "Yuridik boshqarma"},
		{"monitoring@bank.uz", "Moliyaviy monitoring boshlig'i", domain.RoleTarmoq, "Moliyaviy monitoring"},
		{"xodim@bank.uz", "Yuridik boshqarma xodimi", domain.RoleReviewer, "Yuridik boshqarma"},
		{"apparat@bank.uz", "Bank apparati xodimi", domain.RoleBankApparati, "Bank apparati"},
		{"resepshn@bank.uz", "Qabulxona xodimi", domain.RoleResepshn, ""},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("devonxona123"), 12)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	for _, su := range seedUsers {
		if _, err := userRepo.GetByEmail(ctx, su.email); err == nil {
			log.Printf("seed: user %s already exists, skipping", su.email)
			continue
		}
		user := &domain.User{
			ID:           uuid.New(),
			Email:        su.email,
			PasswordHash: string(hash),
			FullName:     su.fullName,
			Role:         su.role,
			Department:   su.department,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("seed: user %s: %v", su.email, err)
			continue
		}
		log.Printf("seed: user %s (%s) created", su.email, su.role)
	}

	log.Println("seed complete")
}
