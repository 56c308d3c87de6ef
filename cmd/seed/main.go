// Command seed inserts a handful of demo expenses for local development.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"spendlog/internal/models"
	"spendlog/internal/repository"
	"spendlog/pkg/config"
	"spendlog/pkg/logger"
	"spendlog/pkg/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	userID := int64(1)
	if raw := os.Getenv("SEED_USER_ID"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			userID = parsed
		}
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := repository.NewExpenseRepository(db, appLogger)
	now := time.Now()

	samples := []struct {
		amount   string
		category string
		desc     string
		place    string
		daysAgo  int
		source   models.SourceKind
	}{
		{"540.50", models.CategoryGroceries, "weekly groceries", "corner store", 1, models.SourceText},
		{"120", models.CategoryTransport, "metro card top-up", "metro station", 2, models.SourceText},
		{"890", models.CategoryCafe, "dinner with friends", "KFC downtown", 3, models.SourceVoice},
		{"1500", models.CategoryBills, "electricity bill", "", 5, models.SourceText},
		{"300", models.CategoryEntertainment, "movie tickets", "cinema", 7, models.SourceVoice},
	}

	for _, sample := range samples {
		amount, err := decimal.NewFromString(sample.amount)
		if err != nil {
			appLogger.Fatal("Bad sample amount", zap.String("amount", sample.amount), zap.Error(err))
		}

		exp := models.Expense{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      amount,
			Currency:    cfg.Expense.HomeCurrency,
			Category:    sample.category,
			Description: &sample.desc,
			ExpenseDate: now.AddDate(0, 0, -sample.daysAgo),
			RawText:     sample.desc,
			Source:      sample.source,
			CreatedAt:   now,
		}
		if sample.place != "" {
			exp.Place = &sample.place
		}

		if err := repo.Create(ctx, &exp); err != nil {
			appLogger.Fatal("Failed to insert sample expense", zap.Error(err))
		}
	}

	appLogger.Info("Seeding completed",
		zap.Int("expenses", len(samples)),
		zap.Int64("user_id", userID),
	)
}
