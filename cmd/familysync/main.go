package main

import (
	"context"
	"os"
	"time"

	"wikisite/internal/family/metrics"
	"wikisite/internal/family/store"
	"wikisite/internal/platform/config"
	"wikisite/internal/platform/logger"
	"wikisite/internal/platform/postgres"
	platformredis "wikisite/internal/platform/redis"
	"wikisite/pkg/platform/tx"
)

// main pushes the compiled-in family definitions into the Postgres directory
// and drops any stale Redis snapshots. Run after editing family data; running
// bots pick the change up when their cached snapshots expire.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.PostgresURL == "" {
		log.Error("WIKISITE_POSTGRES_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seeded := store.NewMemory()
	if err := store.Seed(ctx, seeded); err != nil {
		log.Error("failed to load family definitions", "error", err)
		os.Exit(1)
	}

	pg := store.NewPostgres(db, metrics.New())
	if err := pg.EnsureSchema(ctx); err != nil {
		log.Error("failed to ensure directory schema", "error", err)
		os.Exit(1)
	}

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var snapshots *store.RedisCache
	if cache != nil {
		snapshots = store.NewRedisCache(pg, cache.Client, cfg.FamilyCacheTTL, nil)
		defer cache.Close()
	}

	names, err := seeded.List(ctx)
	if err != nil {
		log.Error("failed to list family definitions", "error", err)
		os.Exit(1)
	}

	// All families land in one transaction so bots never observe a half
	// finished sync.
	txn, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin sync transaction", "error", err)
		os.Exit(1)
	}
	txCtx := tx.WithTx(ctx, txn)

	for _, name := range names {
		fam, err := seeded.Find(ctx, name)
		if err != nil {
			log.Error("failed to read family definition", "family", name, "error", err)
			os.Exit(1)
		}
		if err := pg.Save(txCtx, fam); err != nil {
			txn.Rollback()
			log.Error("failed to save family", "family", name, "error", err)
			os.Exit(1)
		}
		log.Info("family synced", "family", name, "languages", len(fam.Languages))
	}

	if err := txn.Commit(); err != nil {
		log.Error("failed to commit sync transaction", "error", err)
		os.Exit(1)
	}

	if snapshots != nil {
		for _, name := range names {
			if err := snapshots.Invalidate(ctx, name); err != nil {
				log.Warn("failed to invalidate cached snapshot", "family", name, "error", err)
			}
		}
	}

	log.Info("family directory sync complete", "families", len(names))
}
