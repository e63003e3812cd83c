package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"puretask/internal/config"
	"puretask/internal/database"
	"puretask/internal/domain"
	"puretask/internal/modules/payout"
	"puretask/internal/modules/pricing"
	"puretask/internal/pkg/jwt"
	"puretask/internal/pkg/lock"
	"puretask/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("level=warn msg=\".env not loaded\" err=%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payouts")
	db.Exec("DELETE FROM cleaner_earnings")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM pricing_rules")
	db.Exec("DELETE FROM cleaner_profiles")

	ctx := context.Background()
	cleaners := repository.NewCleanerRepository(db)
	rules := repository.NewPricingRuleRepository(db)

	// ================== CLEANERS ==================
	log.Println("Creating cleaners...")
	profiles := []domain.CleanerProfile{
		{
			ID:            "cleaner-maria",
			Email:         "maria@puretask.test",
			FullName:      "Maria Lopez",
			HourlyRate:    40,
			DeepCleanRate: 15,
			MoveOutRate:   25,
			AdditionalServices: map[string]domain.ServicePrice{
				"oven":    {Price: decimal.NewFromInt(30)},
				"windows": {Price: decimal.NewFromInt(5), PerUnit: true},
			},
			TotalJobs: 42,
			IsActive:  true,
		},
		{
			ID:         "cleaner-sam",
			Email:      "sam@puretask.test",
			FullName:   "Sam Carter",
			HourlyRate: 30,
			TotalJobs:  2,
			IsActive:   true,
		},
		{
			ID:         "cleaner-lee",
			Email:      "lee@puretask.test",
			FullName:   "Lee Park",
			HourlyRate: 35,
			TotalJobs:  0,
			IsActive:   false,
		},
	}
	for i := range profiles {
		if err := cleaners.Upsert(ctx, &profiles[i]); err != nil {
			log.Fatalf("seed cleaner %s: %v", profiles[i].ID, err)
		}
	}

	// ================== PRICING RULES ==================
	log.Println("Creating pricing rules...")
	for _, r := range pricing.DefaultRules() {
		rule := r
		if err := rules.Create(ctx, &rule); err != nil {
			log.Fatalf("seed rule %s: %v", rule.ID, err)
		}
	}

	// ================== EARNINGS ==================
	log.Println("Creating earnings...")
	payouts := payout.NewService(
		repository.NewEarningRepository(db),
		repository.NewPayoutRepository(db),
		lock.NewMemoryLocker(),
		cfg.Payout,
		cfg.BusinessLocation,
		log.Printf,
	)
	earnings := []struct {
		cleanerID string
		bookingID string
		amount    string
	}{
		{"cleaner-maria", "seed-booking-1", "120.00"},
		{"cleaner-maria", "seed-booking-2", "85.50"},
		{"cleaner-sam", "seed-booking-3", "8.00"},
	}
	for _, e := range earnings {
		if _, err := payouts.RecordEarning(ctx, e.cleanerID, e.bookingID, decimal.RequireFromString(e.amount)); err != nil {
			log.Fatalf("seed earning %s: %v", e.bookingID, err)
		}
	}

	// ================== TOKENS ==================
	tokens := jwt.New(cfg.JWTSecret, 30*24*time.Hour)
	identities := []struct {
		id, email string
		role      domain.UserRole
	}{
		{"admin-1", "admin@puretask.test", domain.RoleAdmin},
		{"cleaner-maria", "maria@puretask.test", domain.RoleCleaner},
		{"cleaner-sam", "sam@puretask.test", domain.RoleCleaner},
		{"client-1", "client@puretask.test", domain.RoleClient},
	}
	for _, id := range identities {
		token, err := tokens.GenerateToken(id.id, id.email, string(id.role))
		if err != nil {
			log.Fatalf("token for %s: %v", id.id, err)
		}
		fmt.Printf("%-8s %-22s %s\n", id.role, id.email, token)
	}

	log.Println("Seed completed")
}
