package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"boothreserve/internal/promos"
	"boothreserve/internal/reservations"
	"boothreserve/internal/shared/config"
	"boothreserve/internal/shared/constants"
	"boothreserve/internal/shared/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db    *database.DB
	promo promos.Repository
	now   time.Time
}

func main() {
	vipEvent := flag.String("vip-event", "vip-night", "event id the VIPONLY code is scoped to")
	clean := flag.Bool("clean", true, "truncate reservations and promos before seeding")
	flag.Parse()

	fmt.Println("🌱 Starting boothreserve seeder...")

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.UsesMemoryStore() {
		log.Fatal("STORE_DRIVER=memory has nothing to seed; point the seeder at Postgres")
	}

	db, err := database.InitDB(cfg, promos.Migrate, reservations.Migrate)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:    db,
		promo: promos.NewRepository(db.GetPostgreSQL()),
		now:   time.Now().UTC(),
	}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
	}

	fmt.Println("\n🌱 Seeding promos...")
	if err := seeder.SeedPromos(context.Background(), *vipEvent); err != nil {
		log.Fatalf("Failed to seed promos: %v", err)
	}

	if err := seeder.ClearAvailabilityCache(context.Background()); err != nil {
		log.Printf("Warning: Failed to clear availability cache: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed!")
}

// CleanDatabase truncates the engine's tables
func (s *Seeder) CleanDatabase() error {
	for _, table := range []string{"reservations", "promos"} {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// SeedPromos inserts the demo codes
func (s *Seeder) SeedPromos(ctx context.Context, vipEvent string) error {
	year := 365 * 24 * time.Hour

	seed := []promos.Promo{
		{
			Code:              "SAVE20",
			Description:       "20% off any booth",
			DiscountType:      promos.DiscountTypePercent,
			Discount:          decimal.NewFromInt(20),
			StartDate:         s.now.Add(-24 * time.Hour),
			EndDate:           s.now.Add(year),
			IsActive:          true,
			Scope:             promos.ScopeAll,
			MinPurchaseAmount: decimal.Zero,
		},
		{
			Code:              "FLAT50",
			Description:       "$50 off booths of $200 or more",
			DiscountType:      promos.DiscountTypeFlat,
			Discount:          decimal.NewFromInt(50),
			StartDate:         s.now.Add(-24 * time.Hour),
			EndDate:           s.now.Add(year),
			IsActive:          true,
			Scope:             promos.ScopeAll,
			MinPurchaseAmount: decimal.NewFromInt(200),
		},
		{
			Code:              "EARLYBIRD",
			Description:       "Early registration, closed",
			DiscountType:      promos.DiscountTypePercent,
			Discount:          decimal.NewFromInt(15),
			StartDate:         s.now.Add(-90 * 24 * time.Hour),
			EndDate:           s.now.Add(-30 * 24 * time.Hour),
			IsActive:          true,
			Scope:             promos.ScopeAll,
			MinPurchaseAmount: decimal.Zero,
			MaxDiscountAmount: decimal.NewNullDecimal(decimal.NewFromInt(75)),
		},
		{
			Code:              "VIPONLY",
			Description:       "30% off for the VIP night",
			DiscountType:      promos.DiscountTypePercent,
			Discount:          decimal.NewFromInt(30),
			StartDate:         s.now.Add(-24 * time.Hour),
			EndDate:           s.now.Add(year),
			IsActive:          true,
			Scope:             promos.ScopeSpecific,
			ApplicableEvents:  []string{vipEvent},
			MinPurchaseAmount: decimal.Zero,
		},
	}

	for i := range seed {
		if err := s.promo.Create(ctx, &seed[i]); err != nil {
			return fmt.Errorf("create %s: %w", seed[i].Code, err)
		}
		fmt.Printf("    ✅ Created promo: %s (%s %s)\n", seed[i].Code, seed[i].Discount.String(), seed[i].DiscountType)
	}
	return nil
}

// ClearAvailabilityCache drops cached projections so the seeded state is visible
func (s *Seeder) ClearAvailabilityCache(ctx context.Context) error {
	if s.db.GetRedis() == nil {
		return nil
	}

	iter := s.db.Redis.Scan(ctx, 0, constants.CACHE_KEY_AVAILABILITY_EVENT+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.db.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
