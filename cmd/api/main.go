package main

import (
	"context"
	"fmt"
	"os"

	"foodorder/internal/config"
	"foodorder/internal/infra/db"
	"foodorder/internal/infra/events"
	"foodorder/internal/infra/idempotency"
	"foodorder/internal/logger"
	"foodorder/internal/server"
	"foodorder/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info", false)
		l.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// deferで後片付けしてからmainに戻る
func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("db connect (%s): %w", cfg.DBDriver, err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	//注文イベント
	pub, err := events.New(cfg)
	if err != nil {
		return fmt.Errorf("events publisher (%s): %w", cfg.EventsDriver, err)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn().Err(err).Msg("events publisher close failed")
		}
	}()

	//Idempotency-Key（REDIS_ADDRが空なら無効）
	var guard usecase.CheckoutGuard
	if cfg.RedisAddr != "" {
		rdb := idempotency.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		guard = idempotency.NewRedisGuard(rdb, cfg.IdempotencyTTL)
	}

	e := server.Build(cfg, log, gormDB, pub, guard)

	return server.Start(ctx, e, cfg.Addr(), log)
}
