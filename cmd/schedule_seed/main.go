package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"tixpay/internal/config"
	"tixpay/internal/repositories"
	"tixpay/internal/services/feeschedule"
	"tixpay/internal/settlement"
)

// schedule_seed publishes a fee schedule version. Without -file the schedule is
// built from the FEE_* environment variables.
func main() {
	file := flag.String("file", "", "JSON fee schedule to publish")
	version := flag.String("version", "", "override the version label")
	flag.Parse()

	config.LoadEnv()

	var cfg settlement.ScheduleConfig
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			log.Fatalf("Failed to parse %s: %v", *file, err)
		}
	} else {
		var err error
		if cfg, err = config.DefaultScheduleConfig(); err != nil {
			log.Fatalf("Failed to load fee schedule configuration: %v", err)
		}
	}
	if *version != "" {
		cfg.Version = *version
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close()

	svc := feeschedule.NewService(
		repositories.NewFeeScheduleRepository(repositories.DB),
		repositories.CacheService,
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	row, err := svc.Publish(ctx, cfg, 0)
	if errors.Is(err, feeschedule.ErrVersionExists) {
		log.Printf("Fee schedule %s already published", cfg.Version)
		return
	}
	if err != nil {
		repositories.Close()
		log.Fatalf("Failed to publish fee schedule: %v", err)
	}

	log.Printf("✅ Fee schedule %s published (id %d)", row.Version, row.ID)
}
