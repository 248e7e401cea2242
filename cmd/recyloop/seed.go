package main

import (
	"context"
	"fmt"

	"recyloop/internal/db"
	"recyloop/internal/seed"
	"recyloop/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with development data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		userRepo := store.NewUserRepository(pool)
		formRepo := store.NewFormRepository(pool)

		logrus.Info("Seeding users...")
		if err := seed.SeedFakeUsers(ctx, userRepo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seeding forms...")
		if err := seed.SeedFakeForms(ctx, formRepo); err != nil {
			return fmt.Errorf("failed to seed forms: %w", err)
		}

		logrus.Info("Seed data applied successfully")

		return nil
	},
}
