// Package main - ponto de entrada dos processos de fundo (Worker) do Daily
// Check Maromba.
//
// O Worker cuida das tarefas periódicas:
// - Reconstrução do cache de rankings da temporada ativa
// - Reprocessamento noturno do histórico de presença
//
// Filosofia: "Quem não registra, não treinou" - o Worker garante que o
// ranking e as multas reflitam sempre a política vigente da temporada.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/ripcamargo/daily-check-maromba/config"
	"github.com/ripcamargo/daily-check-maromba/internal/application/command"
	"github.com/ripcamargo/daily-check-maromba/internal/application/query"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/persistence/postgres"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/persistence/redis"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/scheduler"
	"github.com/ripcamargo/daily-check-maromba/internal/infrastructure/scheduler/jobs"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CARREGAMENTO DA CONFIGURAÇÃO
	// ─────────────────────────────────────────────────────────────────────────
	// .env é opcional, em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING ESTRUTURADO
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Daily Check Maromba worker",
		"env", cfg.App.Environment,
		"debug", cfg.App.Debug,
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. CONEXÃO COM O BANCO (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRAÇÕES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (opcional)
	// ─────────────────────────────────────────────────────────────────────────
	var cmdCache command.RankingCache
	var qryCache query.RankingCache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err := redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", "error", err)
		} else {
			defer redisCache.Close()
			rankingCache := redis.NewRankingCache(redisCache)
			cmdCache = rankingCache
			qryCache = rankingCache
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITÓRIOS E HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	athleteRepo := postgres.NewAthleteRepository(dbConn)
	seasonRepo := postgres.NewSeasonRepository(dbConn)
	checkinRepo := postgres.NewCheckinRepository(dbConn)

	rankingsHandler := query.NewGetRankingsHandler(seasonRepo, checkinRepo, athleteRepo, qryCache)
	reprocessHandler := command.NewReprocessSeasonHandler(seasonRepo, checkinRepo, cmdCache)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. SCHEDULER
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Logger:   log,
		Timezone: cfg.App.Location,
	})

	rebuildJob := jobs.NewRebuildRankingsJob(seasonRepo, rankingsHandler, cmdCache, log)
	rebuildJob.Timeout = cfg.Scheduler.JobTimeout
	if err := sched.Register(rebuildJob, scheduler.NewIntervalSchedule(cfg.Scheduler.RebuildRankingsInterval)); err != nil {
		return fmt.Errorf("failed to register rebuild_rankings: %w", err)
	}

	reprocessJob := jobs.NewReprocessSeasonJob(reprocessHandler, log)
	reprocessJob.Timeout = cfg.Scheduler.JobTimeout
	nightly := scheduler.NewDailySchedule(cfg.Scheduler.ReprocessHour, cfg.Scheduler.ReprocessMinute, cfg.App.Location)
	if err := sched.Register(reprocessJob, nightly); err != nil {
		return fmt.Errorf("failed to register reprocess_season: %w", err)
	}

	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		log.Info("scheduler started", "jobs", len(sched.ListJobs()))
	} else {
		log.Warn("scheduler disabled by configuration")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("Daily Check Maromba worker is running",
		"timezone", cfg.App.Timezone,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigCh
	log.Info("received shutdown signal", "signal", sig.String())

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())
	if sched.IsRunning() {
		if err := sched.Stop(); err != nil {
			log.Warn("scheduler stop failed", "error", err)
		}
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger configura o logging estruturado.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	if cfg.IsProduction() || cfg.Observability.LogFormat == "json" {
		// JSON para produção, melhor para agregadores de log.
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
