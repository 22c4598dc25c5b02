package main

import (
	"context"
	"fmt"

	"github.com/osse101/realmkeeper/internal/config"
	"github.com/osse101/realmkeeper/internal/item"
	"github.com/osse101/realmkeeper/internal/progression"
)

type CheckConfigCommand struct{}

func (c *CheckConfigCommand) Name() string {
	return "check-config"
}

func (c *CheckConfigCommand) Description() string {
	return "Validate environment and the achievement and item catalogs"
}

func (c *CheckConfigCommand) Run(args []string) error {
	PrintHeader("Checking environment")
	warnings, err := config.ValidateEnvWithWarnings()
	for _, w := range warnings {
		PrintWarning("%s", w)
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	PrintSuccess("Environment is valid")

	ctx := context.Background()

	PrintHeader("Checking catalogs")
	achievements, err := progression.LoadCatalog(ctx, cfg.AchievementsPath)
	if err != nil {
		return err
	}
	PrintSuccess("%s: %d achievements", cfg.AchievementsPath, achievements.Len())

	items, err := item.LoadCatalog(ctx, cfg.ItemsPath)
	if err != nil {
		return err
	}
	PrintSuccess("%s: %d items", cfg.ItemsPath, items.Len())
	return nil
}
