package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"spendlog/internal/models"
	"spendlog/internal/nlp"
	"spendlog/internal/service"
)

const startMessage = `Hi! I keep track of your expenses.
Just write something like "bought groceries for 500 rubles at the corner store yesterday",
or send a voice note, and I will parse and record it.

Commands:
/last - show your last 10 expenses`

// Bot is the Telegram transport: it receives updates over long polling and
// feeds text and voice messages into the expense pipeline.
type Bot struct {
	api        *tgbotapi.BotAPI
	expenses   *service.ExpenseService
	httpClient *http.Client
	logger     *zap.Logger
}

func New(token string, expenses *service.ExpenseService, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:      api,
		expenses: expenses,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each message is handled to
// completion independently; a failed one only produces an apology reply.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Voice != nil:
		b.handleVoice(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, startMessage)
	case "last":
		b.handleLast(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command.")
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	exp, err := b.expenses.HandleText(ctx, msg.From.ID, msg.Text)
	if err != nil {
		b.logger.Error("Failed to handle text expense",
			zap.Int64("user_id", msg.From.ID),
			zap.Error(err),
		)
		b.reply(msg.Chat.ID, userFacingError(err))
		return
	}

	b.reply(msg.Chat.ID, "Recorded expense: "+formatExpense(exp))
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	audio, err := b.downloadVoice(ctx, msg.Voice.FileID)
	if err != nil {
		b.logger.Error("Failed to download voice note",
			zap.Int64("user_id", msg.From.ID),
			zap.Error(err),
		)
		b.reply(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}

	exp, err := b.expenses.HandleVoice(ctx, msg.From.ID, audio)
	if err != nil {
		b.logger.Error("Failed to handle voice expense",
			zap.Int64("user_id", msg.From.ID),
			zap.Error(err),
		)
		b.reply(msg.Chat.ID, userFacingError(err))
		return
	}

	b.reply(msg.Chat.ID, "Transcribed and recorded expense: "+formatExpense(exp))
}

func (b *Bot) handleLast(ctx context.Context, msg *tgbotapi.Message) {
	expenses, err := b.expenses.LastExpenses(ctx, msg.From.ID, 0)
	if err != nil {
		b.logger.Error("Failed to list expenses",
			zap.Int64("user_id", msg.From.ID),
			zap.Error(err),
		)
		b.reply(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}

	if len(expenses) == 0 {
		b.reply(msg.Chat.ID, "No expenses yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your last expenses:\n")
	for _, exp := range expenses {
		sb.WriteString("- ")
		sb.WriteString(exp.ExpenseDate.Format("2006-01-02"))
		sb.WriteString(" | ")
		sb.WriteString(exp.Amount.String())
		sb.WriteString(" ")
		sb.WriteString(exp.Currency)
		sb.WriteString(" | ")
		sb.WriteString(exp.Category)
		if exp.Description != nil {
			sb.WriteString(" | ")
			sb.WriteString(*exp.Description)
		}
		if exp.Place != nil {
			sb.WriteString(" | ")
			sb.WriteString(*exp.Place)
		}
		sb.WriteString("\n")
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) downloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve voice file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voice file download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func formatExpense(exp *models.Expense) string {
	s := exp.Amount.String() + " " + exp.Currency + " (" + exp.Category
	if exp.Place != nil {
		s += ", place: " + *exp.Place
	}
	return s + ")"
}

// userFacingError maps pipeline failures onto the two replies users see.
// Diagnostic detail stays in the logs.
func userFacingError(err error) string {
	var gatewayErr *nlp.GatewayError
	var nonJSONErr *nlp.NonJSONResponseError
	if errors.As(err, &gatewayErr) || errors.As(err, &nonJSONErr) {
		return "Something went wrong, please try again."
	}
	return "Sorry, I could not understand that expense. Try something like \"bought groceries for 500 rubles\"."
}
