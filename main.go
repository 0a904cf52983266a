package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"storebot/bot"
	"storebot/config"
	"storebot/db"
	"storebot/server"
	"storebot/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := newLogger(cfg.LogFile)

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg, log)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		log.WithError(err).Fatal("db")
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}

	if err := services.SeedCatalog(context.Background(), log); err != nil {
		log.WithError(err).Fatal("seed")
	}

	catalog := services.PGCatalog{}
	orders := services.PGOrderStore{}
	conversations := newConversationStore(cfg, log)

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg, catalog, conversations, log)
		if err != nil {
			log.WithError(err).Fatal("bot")
		}
		go b.Start()
		log.Info("telegram bot started")
	}

	srv := server.New(catalog, orders, conversations, log)
	log.WithField("addr", cfg.HTTP.Addr).Info("http server starting")
	if err := srv.Run(cfg.HTTP.Addr); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

func newLogger(logFile string) *logrus.Logger {
	log := logrus.New()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.WithError(err).Warn("cannot open log file, logging to stderr only")
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}
	return log
}

// newConversationStore picks Redis when configured, Postgres otherwise.
func newConversationStore(cfg *config.Config, log *logrus.Logger) services.ConversationStore {
	if cfg.Redis.Addr == "" {
		return services.PGConversationStore{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.WithField("addr", cfg.Redis.Addr).Info("conversation state in redis")
	return &services.RedisConversationStore{Client: client}
}

func runMigrate(cfg *config.Config, log *logrus.Logger) {
	if err := db.Init(cfg.DB); err != nil {
		log.WithError(err).Fatal("db")
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		log.WithError(err).Fatal("migrate")
	}
}
