package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"consultancy/internal/backend/diskstore"
	"consultancy/internal/backend/gormstore"
	"consultancy/internal/backend/localauth"
	"consultancy/internal/config"
	"consultancy/internal/database"
	"consultancy/internal/domain/booking"
	"consultancy/internal/logger"
	"consultancy/internal/middleware"
	jwtsvc "consultancy/internal/pkg/jwt"
	"consultancy/internal/server"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	pruneInterval   = time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	catalog, err := booking.LoadCatalog(cfg.ServicesFile)
	if err != nil {
		return err
	}

	auth := localauth.NewService(db, jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL),
		localauth.LogMailer{Log: log.Named("mail")}, log.Named("localauth"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		limiter middleware.Limiter
		memory  *middleware.MemoryLimiter
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limits fail open until it recovers", zap.Error(err))
		}
		window := time.Duration(float64(cfg.RateLimitBurst) / cfg.RateLimitRPS * float64(time.Second))
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitBurst, window, "consultancy:rl")
		log.Info("using redis rate limiter", zap.Duration("window", window))
	} else {
		memory = middleware.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter = memory
	}

	srv := server.New(cfg, server.Deps{
		Auth:    auth,
		Tables:  gormstore.New(db),
		Objects: diskstore.New(cfg.UploadsDir, cfg.StaticURLBase),
		Limiter: limiter,
		Catalog: catalog,
	}, log)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		srv.Hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return srv.Sessions.Run(gctx, sweepInterval)
	})
	if memory != nil {
		g.Go(func() error {
			return memory.Run(gctx, sweepInterval)
		})
	}
	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				sessions, resets, err := auth.Prune(gctx)
				if err != nil {
					log.Warn("auth prune failed", zap.Error(err))
					continue
				}
				log.Info("auth pruned", zap.Int64("sessions", sessions), zap.Int64("password_resets", resets))
			}
		}
	})

	return g.Wait()
}
