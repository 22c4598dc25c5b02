package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/realmkeeper/internal/database/postgres"
	"github.com/osse101/realmkeeper/internal/domain"
)

const seedGuildName = "Founders"

// seedPlayers are created fresh on their first login
var seedPlayers = []domain.PlayerProfile{
	{Name: "alice", Class: domain.ClassFighter, Position: domain.Position{X: 120, Y: 80}, HitPoints: 100, Mana: 20, FirstLogin: true},
	{Name: "bob", Class: domain.ClassFighter, Position: domain.Position{X: 124, Y: 80}, HitPoints: 100, Mana: 20, FirstLogin: true},
	{Name: "gm", Class: domain.ClassFighter, Position: domain.Position{X: 100, Y: 100}, HitPoints: 500, Mana: 200, Experience: 1000000},
}

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with demo players and a guild"
}

func (c *SeedCommand) Run(args []string) error {
	ctx := context.Background()
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	players := postgres.NewPlayerRepository(pool)
	guilds := postgres.NewGuildRepository(pool)

	PrintHeader("Seeding players")
	for i := range seedPlayers {
		p := seedPlayers[i]
		if err := players.CreatePlayer(ctx, &p); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				PrintWarning("Player %s already exists", p.Name)
				continue
			}
			return fmt.Errorf("failed to create player %s: %w", p.Name, err)
		}
		PrintSuccess("Created player %s", p.Name)
	}

	PrintHeader("Seeding guild")
	guild, err := guilds.CreateGuild(ctx, seedGuildName)
	if err != nil {
		if errors.Is(err, domain.ErrGuildNameTaken) {
			PrintWarning("Guild %s already exists", seedGuildName)
			return nil
		}
		return err
	}
	if err := guilds.AddGuildMember(ctx, guild.ID, "alice"); err != nil {
		return err
	}
	if err := guilds.AddSkillOnItem(ctx, guild.ID, "alice"); err != nil {
		return err
	}
	PrintSuccess("Created guild %s (id %d) founded by alice", guild.Name, guild.ID)
	return nil
}
