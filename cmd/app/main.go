package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/realmkeeper/internal/bootstrap"
	"github.com/osse101/realmkeeper/internal/config"
	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/database"
	"github.com/osse101/realmkeeper/internal/database/migrations"
	"github.com/osse101/realmkeeper/internal/database/redis"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/guild"
	"github.com/osse101/realmkeeper/internal/handler"
	"github.com/osse101/realmkeeper/internal/item"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/progression"
	"github.com/osse101/realmkeeper/internal/server"
	"github.com/osse101/realmkeeper/internal/session"
	"github.com/osse101/realmkeeper/internal/transport"
	"github.com/osse101/realmkeeper/internal/worker"
	"github.com/osse101/realmkeeper/internal/world"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool); err != nil {
		return err
	}

	redisClient, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	achievements, err := progression.LoadCatalog(ctx, cfg.AchievementsPath)
	if err != nil {
		return err
	}
	items, err := item.LoadCatalog(ctx, cfg.ItemsPath)
	if err != nil {
		return err
	}

	writePool := worker.NewPool(cfg.WriteWorkers, cfg.WriteQueueSize)
	writePool.Start()
	repos := bootstrap.InitializeRepositories(dbPool, redisClient, writePool)

	loop := worker.NewLoop()
	loop.Start()

	cooldowns := cooldown.NewService(cooldown.Config{})
	cooldowns.Start()

	hub := transport.NewHub(transport.Config{AllowedOrigins: cfg.AllowedOrigins})

	guilds := guild.NewRegistry(repos.Guilds, guild.Deps{
		Store:     repos.GuildWriter,
		Messenger: hub,
		Bus:       publisher,
	}, guild.Config{
		InviteTimeout: cfg.InviteTimeout,
		InviteRate:    float64(cfg.InviteRate),
		InviteBurst:   cfg.InviteBurst,
	})
	if err := guilds.Load(ctx); err != nil {
		return err
	}
	guilds.Start()
	guilds.StartSweep(loop)

	w := world.New(world.Deps{
		Loop:         loop,
		Players:      repos.Players,
		Store:        repos.PlayerWriter,
		Guilds:       guilds,
		GuildStore:   repos.GuildWriter,
		Memberships:  repos.Guilds,
		Messenger:    hub,
		Connections:  hub,
		Items:        items,
		Achievements: achievements,
		Cooldowns:    cooldowns,
		Bus:          publisher,
	}, world.Config{
		Rates:      session.World{DoubleExp: cfg.DoubleExp, ExpMultiplier: cfg.ExpMultiplier},
		Equipment:  equipment.DefaultConfig(),
		LevelFn:    progression.DefaultLevel,
		AdminNames: cfg.AdminNames,
	})
	hub.SetHandler(w)

	srv := server.NewServer(server.Config{
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
	}, server.Deps{
		Ready: map[string]handler.Pinger{
			"database": dbPool,
			"redis":    handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		},
		Hub:   hub,
		World: w,
		PVP:   repos.PVP,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		Loop:               loop,
		WritePool:          writePool,
		Guilds:             guilds,
		Cooldowns:          cooldowns,
		ResilientPublisher: publisher,
	})
	return err
}
