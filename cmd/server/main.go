package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/truthcheck/truthcheck/internal/config"
	"github.com/truthcheck/truthcheck/internal/server"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults",
			zap.String("path", cfgPath),
			zap.Error(err))
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &cfg.Server.Port)
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize server", zap.Error(err))
	}
	r := srv.SetupRouter()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting truthcheck server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	level := zapcore.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
