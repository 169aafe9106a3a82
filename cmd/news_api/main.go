package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/newskeeper/newskeeper/internal/account"
	"github.com/newskeeper/newskeeper/internal/enrich"
	"github.com/newskeeper/newskeeper/internal/news"
	"github.com/newskeeper/newskeeper/internal/router"
	"github.com/newskeeper/newskeeper/internal/saved"
	"github.com/newskeeper/newskeeper/internal/server"
	"github.com/newskeeper/newskeeper/internal/session"
	"github.com/newskeeper/newskeeper/internal/storage/pg"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.Storage.PostgresURL})
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	sessions, err := session.NewStoreFromURL(ctx, cfg.Storage.RedisURL, session.DefaultTTL)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	accountSvc := account.NewService(pg.NewAccountStore(pool), sessions, "")
	savedSvc := saved.NewService(pg.NewSavedStore(pool))

	newsClient := news.NewClient(cfg.News.BaseURL, cfg.News.APIKey)
	enricher := enrich.NewEnricher(
		enrich.NewGeocoder(cfg.Geocode.BaseURL, cfg.Geocode.APIKey),
		enrich.NewWeatherClient(cfg.Weather.BaseURL),
		cfg.LocationLog,
	)

	s := server.NewServer(echo.New(), sCfg).
		SetupHealthChecks("/health", pg.NewHealthChecker(pool), sessions)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Keeper API is running")
	})

	router.NewAuthRouter(s.Echo, accountSvc).Bind()
	router.NewSavedRouter(s.Echo, savedSvc, sessions).Bind()
	router.NewNewsRouter(s.Echo, newsClient, savedSvc, sessions, cfg.News.Country, cfg.News.PageSize).Bind()
	router.NewProfileRouter(s.Echo, accountSvc, enricher, sessions).Bind()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
