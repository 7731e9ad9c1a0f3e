package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gatehouse/internal/application/handler"
	appmetrics "gatehouse/internal/application/metrics"
	"gatehouse/internal/application/service"
	filestore "gatehouse/internal/application/store/file"
	"gatehouse/internal/cooldown"
	"gatehouse/internal/identity"
	"gatehouse/internal/notify"
	"gatehouse/internal/notify/discord"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/httpserver"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/platform/middleware"
	platformredis "gatehouse/internal/platform/redis"
	"gatehouse/internal/policy"
	"gatehouse/internal/ratelimit"
	httptransport "gatehouse/internal/transport/http"
	audit "gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/audit/publisher"
	auditkafka "gatehouse/pkg/platform/audit/store/kafka"
	auditmemory "gatehouse/pkg/platform/audit/store/memory"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.ReviewerIDs) == 0 {
		log.Warn("no reviewer ids configured, every review request will be refused")
	}

	store, err := filestore.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open application store: %w", err)
	}

	checks := map[string]httptransport.HealthCheck{}

	// Reapply cooldowns live in Redis when configured, so multiple instances
	// agree on waiting periods; otherwise they are process-local.
	var cooldowns service.Cooldowns = cooldown.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cooldowns = cooldown.NewRedisStore(redisClient.Client)
		checks["redis"] = redisClient.Health
		log.Info("reapply cooldowns backed by redis")
	}

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return fmt.Errorf("connect kafka audit sink: %w", err)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
		log.Info("audit events relayed to kafka", "topic", cfg.AuditTopic)
	}
	auditPub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(256),
		publisher.WithLogger(log),
	)
	defer auditPub.Close()

	var dispatcher service.Dispatcher = notify.NoopDispatcher{Logger: log}
	if cfg.DiscordBotToken != "" {
		discordClient := discord.NewClient(cfg.DiscordBotToken, cfg.DiscordAPIBase)
		defer discordClient.Close()
		dispatcher = discord.NewDispatcher(discordClient, config.NotifyTimeout, log)
		log.Info("decision notifications delivered via discord")
	}

	svc := service.New(
		store,
		policy.New(cfg.ReviewerIDs),
		dispatcher,
		cooldowns,
		auditPub,
		appmetrics.New(),
		log,
	)

	// Repair any archive move interrupted by a previous crash before serving.
	if err := svc.Reconcile(ctx); err != nil {
		return err
	}

	tokens := identity.NewTokenService(cfg.JWTSigningKey, "gatehouse", "gatehouse")
	router := httptransport.NewRouter(handler.New(svc, log), tokens, log, checks)

	if cfg.SubmitRateLimit > 0 {
		var limitStore ratelimit.Store = ratelimit.NewInMemoryStore()
		if redisClient != nil {
			limitStore = ratelimit.NewRedisStore(redisClient.Client)
		}
		router.WithSubmitLimit(middleware.RateLimit(limitStore, cfg.SubmitRateLimit, cfg.SubmitRateWindow, log))
	}

	srv := httpserver.New(cfg.Addr, router.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting gatehouse", "addr", cfg.Addr, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
