// Command httpd runs the marketlink HTTP service: it links social-media
// posts to prediction-market listings over a small JSON API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jonesrussell/marketlink/internal/api"
	"github.com/jonesrussell/marketlink/internal/config"
	"github.com/jonesrussell/marketlink/internal/database"
	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/logger"
	"github.com/jonesrussell/marketlink/internal/markets"
	"github.com/jonesrussell/marketlink/internal/matcher"
	"github.com/jonesrussell/marketlink/internal/metrics"
	"github.com/jonesrussell/marketlink/internal/selector"
	"github.com/jonesrussell/marketlink/internal/tokenizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Must(logger.Config{}).Fatal("load config", logger.Error(err))
	}

	log := logger.Must(cfg.Logging)
	defer log.Sync()

	log.Info("starting marketlink",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	rules := loadCategoryRules(cfg, log)

	tok := tokenizer.New(cfg.Matching.Tokenizer)
	category := matcher.NewCategoryClassifier(rules, log)
	m := matcher.New(tok, category, matcher.Config{MinMatchScore: cfg.Matching.MinMatchScore}, log)
	sel := selector.New(cfg.Selector, log)

	filter := markets.NewExclusionFilter(cfg.ExclusionPolicy())
	marketClient := markets.NewClient(cfg.Markets, filter, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	mtr := metrics.New(registry)

	handler := api.NewHandler(m, sel, marketClient, mtr, cfg.Matching.MaxTopResults, log)
	server := api.NewServer(handler, api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.Service.WriteTimeout,
		IdleTimeout:  cfg.Service.IdleTimeout,
		Debug:        cfg.Service.Debug,
	}, mtr, registry, log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatal("server failed", logger.Error(err))
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
		}
	}

	log.Info("marketlink stopped")
}

// loadCategoryRules resolves the category rule table: the database when
// configured (seeded with the defaults on first run), else file-defined
// rules, else the built-in table.
func loadCategoryRules(cfg *config.Config, log logger.Logger) []domain.CategoryRule {
	if cfg.Database.Path != "" {
		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			log.Fatal("connect rule store", logger.Error(err))
		}
		defer db.Close()

		repo := database.NewRulesRepository(db)
		ctx := context.Background()
		if err := repo.Seed(ctx, matcher.DefaultCategoryRules()); err != nil {
			log.Fatal("seed rule store", logger.Error(err))
		}

		enabled := true
		rules, err := repo.List(ctx, &enabled)
		if err != nil {
			log.Fatal("load rules", logger.Error(err))
		}
		log.Info("category rules loaded from store",
			logger.String("path", cfg.Database.Path),
			logger.Int("count", len(rules)),
		)
		return rules
	}

	if len(cfg.Matching.Categories) > 0 {
		rules := make([]domain.CategoryRule, 0, len(cfg.Matching.Categories))
		for i, rc := range cfg.Matching.Categories {
			rules = append(rules, domain.CategoryRule{
				ID:       i + 1,
				Category: rc.Category,
				Keywords: rc.Keywords,
				Priority: 1,
				Enabled:  true,
			})
		}
		log.Info("category rules loaded from config", logger.Int("count", len(rules)))
		return rules
	}

	return matcher.DefaultCategoryRules()
}
