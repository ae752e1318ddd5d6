package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"roomrent/cache"
	"roomrent/config"
	"roomrent/jobs"
	"roomrent/middleware"
	"roomrent/repository"
	"roomrent/routes"
	"roomrent/services"
	"roomrent/services/logger"
	"roomrent/services/notification"
)

func main() {
	app := &cli.App{
		Name:  "roomrent",
		Usage: "room rental booking backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create tables and seed areas and facilities",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup() (config.Config, *logger.ZapLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	zl, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, zl, nil
}

func migrate(c *cli.Context) error {
	cfg, zl, err := setup()
	if err != nil {
		return err
	}
	defer zl.Sync()

	db, err := config.ConnectDB(cfg.DB)
	if err != nil {
		return err
	}
	if err := repository.AutoMigrate(c.Context, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	zl.Info("migration finished")
	return nil
}

func serve(c *cli.Context) error {
	cfg, zl, err := setup()
	if err != nil {
		return err
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}

	router, m, scheduler := config.InitApp(cfg)
	router.Use(middleware.RequestID(), middleware.RequestLogger(zl.Zap()))

	var storage services.ImageStorage
	if cld, err := config.ConnectCloudinary(cfg.Cloudinary); err != nil {
		zl.Error("cloudinary disabled: %v", err)
	} else {
		storage = services.NewCloudinaryStorage(cld, cfg.Cloudinary.Folder)
	}

	facade := services.NewBookingFacade(services.Deps{
		Store:    store,
		Cache:    openCache(ctx, cfg, zl),
		Storage:  storage,
		Notifier: notification.NewMelodyService(m),
		Log:      zl,
		Config:   cfg,
	})

	if err := jobs.InitCronJobs(scheduler, cfg.CacheWarmSpec, facade.Listings, zl, cfg.RequestTimeout); err != nil {
		return fmt.Errorf("init cron jobs: %w", err)
	}
	defer scheduler.Stop()

	routes.SetupRoutes(router, routes.Options{
		Facade:         facade,
		Melody:         m,
		Logger:         zl,
		RequestTimeout: cfg.RequestTimeout,
	})
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting on port %s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = m.Close()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (repository.Store, error) {
	if cfg.StoreDriver == "memory" {
		log.Info("using in-memory store")
		s := repository.NewMemoryStore()
		s.SeedDefaults()
		return s, nil
	}
	db, err := config.ConnectDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Env != "prod" {
		if err := repository.AutoMigrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return repository.NewGormStore(db), nil
}

// openCache never fails: without a cache every read goes to the store.
func openCache(ctx context.Context, cfg config.Config, log logger.Logger) cache.Cache {
	var backend cache.Cache
	switch cfg.Cache.Driver {
	case "memory":
		mc, err := cache.NewMemoryCache(cfg.Cache.MemorySize)
		if err != nil {
			log.Error("memory cache disabled: %v", err)
			return nil
		}
		backend = mc
	default:
		rdb, err := config.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Error("redis unreachable, running without cache: %v", err)
			return nil
		}
		backend = cache.NewRedisCache(rdb, cfg.Cache.OpTimeout)
	}
	return cache.NewGuarded(backend, cache.NewBreaker(cfg.Breaker))
}
