package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"puretask/internal/app"
	"puretask/internal/config"
	"puretask/internal/database"
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
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	locker, closeLocker, err := app.NewLocker(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLocker()

	a := app.New(db, cfg, locker)
	summary, err := a.Payouts.RunWeeklyPayouts(ctx)
	if err != nil {
		log.Fatalf("weekly payouts failed: %v", err)
	}

	log.Printf("weekly payouts completed: cutoff=%s cleaners=%d created=%d skipped=%d failed=%d total_usd=%s",
		summary.Cutoff.Format(time.RFC3339), summary.Cleaners, len(summary.Created), summary.Skipped, summary.Failed, summary.TotalUSD)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
