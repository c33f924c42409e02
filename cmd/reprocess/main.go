// Package main - ferramenta de manutenção que reprocessa o histórico de uma
// temporada do Daily Check Maromba.
//
// Uso:
//
//	reprocess                    reprocessa a temporada ativa
//	reprocess -season <id>       reprocessa uma temporada específica
//	reprocess -dry-run           calcula sem gravar nada
//
// Reclassifica todos os dias em ordem cronológica a partir das marcações
// originais e imprime os dias cuja classificação mudou.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ripcamargo/daily-check-maromba/config"
	"github.com/ripcamargo/daily-check-maromba/internal/application/command"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/persistence/postgres"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/persistence/redis"
)

func main() {
	seasonID := flag.String("season", "", "season to reprocess (defaults to the active season)")
	dryRun := flag.Bool("dry-run", false, "compute the result without persisting anything")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *seasonID, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "reprocess failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, seasonID string, dryRun bool) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbConn.Close()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// O cache só precisa ser invalidado quando gravamos de verdade.
	var cache command.RankingCache
	if !dryRun && !cfg.Redis.Disabled {
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB

		redisCache, err := redis.NewCache(redisCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: Redis unavailable, skipping cache invalidation: %v\n", err)
		} else {
			defer redisCache.Close()
			cache = redis.NewRankingCache(redisCache)
		}
	}

	seasonRepo := postgres.NewSeasonRepository(dbConn)
	checkinRepo := postgres.NewCheckinRepository(dbConn)
	handler := command.NewReprocessSeasonHandler(seasonRepo, checkinRepo, cache)

	result, err := handler.Handle(ctx, command.ReprocessSeasonCommand{
		SeasonID: seasonID,
		DryRun:   dryRun,
	})
	if err != nil {
		if result != nil && result.DaysProcessed > 0 {
			fmt.Printf("persisted up to %s before failing\n", result.LastDate)
		}
		return err
	}

	mode := "reprocessed"
	if dryRun {
		mode = "dry-run"
	}
	fmt.Printf("season %s: %s %d days (%s .. %s) in %s\n",
		result.SeasonID, mode, result.DaysProcessed,
		result.FirstDate, result.LastDate, result.Duration)

	if len(result.Changes) == 0 {
		fmt.Println("no classification changes")
		return nil
	}

	fmt.Printf("%d days changed:\n", len(result.Changes))
	for _, change := range result.Changes {
		fmt.Printf("  %s\n", change.Date)
		for _, tr := range change.Athletes {
			fmt.Printf("    %s: %s %s -> %s %s\n",
				tr.AthleteID, tr.From.Emoji(), tr.From, tr.To.Emoji(), tr.To)
		}
	}
	return nil
}
