package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spendlog/internal/models"
	"spendlog/internal/nlp"
)

const lastExpensesLimit = 10

// ExpenseStore persists normalized expenses and serves read queries.
type ExpenseStore interface {
	Create(ctx context.Context, exp *models.Expense) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]*models.Expense, error)
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]*models.Expense, error)
}

// Transcriber turns raw voice bytes into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Extractor turns an utterance into loosely typed expense fields.
type Extractor interface {
	Extract(ctx context.Context, utterance string) (*nlp.Fields, error)
}

// ExpenseService runs the full pipeline for one utterance: extract fields,
// normalize them and persist the record. Each call is independent; nothing is
// written before normalization succeeds, so a failed utterance leaves no
// partial state behind.
type ExpenseService struct {
	repo        ExpenseStore
	extractor   Extractor
	normalizer  nlp.Normalizer
	transcriber Transcriber
	logger      *zap.Logger
}

func NewExpenseService(
	repo ExpenseStore,
	extractor Extractor,
	normalizer nlp.Normalizer,
	transcriber Transcriber,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		repo:        repo,
		extractor:   extractor,
		normalizer:  normalizer,
		transcriber: transcriber,
		logger:      logger,
	}
}

// HandleText records an expense described by a typed message.
func (s *ExpenseService) HandleText(ctx context.Context, userID int64, text string) (*models.Expense, error) {
	fields, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract expense: %w", err)
	}
	return s.saveParsed(ctx, fields, userID, text, models.SourceText)
}

// HandleVoice transcribes a voice note and records the expense it describes.
func (s *ExpenseService) HandleVoice(ctx context.Context, userID int64, audio []byte) (*models.Expense, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("transcribe voice: %w", err)
	}

	fields, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("extract expense: %w", err)
	}
	return s.saveParsed(ctx, fields, userID, transcript, models.SourceVoice)
}

// LastExpenses returns the user's most recent expenses, newest first. A
// non-positive limit falls back to the default of 10.
func (s *ExpenseService) LastExpenses(ctx context.Context, userID int64, limit int) ([]*models.Expense, error) {
	if limit <= 0 {
		limit = lastExpensesLimit
	}
	return s.repo.ListRecent(ctx, userID, limit)
}

// ExpensesBetween returns the user's expenses within [from, to].
func (s *ExpenseService) ExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]*models.Expense, error) {
	return s.repo.ListBetween(ctx, userID, from, to)
}

func (s *ExpenseService) saveParsed(ctx context.Context, fields *nlp.Fields, userID int64, rawText string, source models.SourceKind) (*models.Expense, error) {
	exp := s.normalizer.Normalize(fields, userID, sanitizeUTF8(rawText), source, time.Now())
	exp.ID = uuid.New()
	if exp.Description != nil {
		clean := sanitizeUTF8(*exp.Description)
		exp.Description = &clean
	}
	if exp.Place != nil {
		clean := sanitizeUTF8(*exp.Place)
		exp.Place = &clean
	}

	if err := s.repo.Create(ctx, &exp); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	s.logger.Info("Expense recorded",
		zap.String("id", exp.ID.String()),
		zap.Int64("user_id", exp.UserID),
		zap.String("amount", exp.Amount.String()),
		zap.String("currency", exp.Currency),
		zap.String("category", exp.Category),
		zap.String("source", string(exp.Source)),
	)

	return &exp, nil
}
