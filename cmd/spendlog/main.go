package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"spendlog/internal/api"
	"spendlog/internal/api/handlers"
	"spendlog/internal/bot"
	"spendlog/internal/gateway"
	"spendlog/internal/nlp"
	"spendlog/internal/repository"
	"spendlog/internal/service"
	"spendlog/pkg/config"
	"spendlog/pkg/logger"
	"spendlog/pkg/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting spendlog service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Wire the pipeline
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	hfClient := gateway.NewClient(&cfg.HuggingFace, appLogger)
	extractor := nlp.NewExtractor(hfClient, appLogger)
	normalizer := nlp.Normalizer{HomeCurrency: cfg.Expense.HomeCurrency}
	expenseService := service.NewExpenseService(expenseRepo, extractor, normalizer, hfClient, appLogger)

	// Start the Telegram bot
	expenseBot, err := bot.New(cfg.Telegram.BotToken, expenseService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to start telegram bot", zap.Error(err))
	}
	go expenseBot.Run(ctx)

	// Start the read API
	expHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	app := api.SetupRouter(expHandler, cfg.Server.APIToken, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
