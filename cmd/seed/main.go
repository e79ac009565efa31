// Command seed creates the demo accounts and sample resources.
package main

import (
	"context"
	"fmt"

	"github.com/cadmin/cadmin-api/internal/infrastructure/db"
	"github.com/cadmin/cadmin-api/internal/pkg/config"
	"github.com/cadmin/cadmin-api/internal/seed"
	"github.com/cadmin/cadmin-api/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "cadmin-seed", Env: cfg.Env})
	ctx := context.Background()

	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() { _ = store.Close(ctx) }()

	res, err := seed.Run(ctx, store.Users, store.Resources, cfg.Auth.BcryptCost, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	fmt.Printf("Seed complete (%d users, %d resources created)\n", res.UsersCreated, res.ResourcesCreated)
	fmt.Printf("Super Admin: %s / %s\n", seed.AdminEmail, seed.AdminPassword)
	fmt.Printf("Demo User:   %s / %s\n", seed.UserEmail, seed.UserPassword)
}
