package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ridewatch/internal/model"
	"ridewatch/internal/parser"
	"ridewatch/internal/store"
)

// sessionState tracks which filter value the next plain-text message from a
// user is meant to set.
type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitingMinPrice
	stateAwaitingMaxDistance
)

const helpText = "🚖 Ride Watch Bot\n\n" +
	"Configure your filters:\n" +
	"/set_min_price - minimum price\n" +
	"/set_max_distance - maximum distance (km)\n" +
	"/test - try the order parser"

const testMessage = "46.26 € | Test User\n" +
	"Felberstraße 21, 86154 Augsburg\n" +
	"->\n" +
	"Felberstraße 16, 86405 Meitingen"

// Bot handles the conversational commands that maintain user filters. It is
// the only writer of the filter store.
type Bot struct {
	api   *tgbotapi.BotAPI
	store store.FilterStore

	mu       sync.Mutex
	sessions map[int64]sessionState
}

func New(api *tgbotapi.BotAPI, filterStore store.FilterStore) *Bot {
	return &Bot{
		api:      api,
		store:    filterStore,
		sessions: make(map[int64]sessionState),
	}
}

// Run consumes Telegram updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	slog.Info("bot update loop started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			slog.Info("bot update loop stopped")
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
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.reply(chatID, helpText)
		case "set_min_price":
			b.setState(chatID, stateAwaitingMinPrice)
			b.reply(chatID, "Enter the minimum price in € (e.g. 40):")
		case "set_max_distance":
			b.setState(chatID, stateAwaitingMaxDistance)
			b.reply(chatID, "Enter the maximum distance in km (e.g. 10):")
		case "test":
			b.handleTest(chatID)
		}
		return
	}

	state := b.takeState(chatID)
	if state == stateIdle {
		return
	}

	value, err := strconv.ParseFloat(msg.Text, 64)
	if err != nil {
		b.reply(chatID, "❌ Enter a number (e.g. 45.50)")
		return
	}

	userID := strconv.FormatInt(chatID, 10)
	switch state {
	case stateAwaitingMinPrice:
		if err := b.updateFilter(ctx, userID, func(f *model.UserFilter) { f.MinPrice = value }); err != nil {
			slog.Error("failed to save min price", "user", userID, "error", err)
			b.reply(chatID, "❌ Could not save the filter, try again")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ Minimum price set: %v €", value))
	case stateAwaitingMaxDistance:
		if err := b.updateFilter(ctx, userID, func(f *model.UserFilter) { f.MaxDistance = &value }); err != nil {
			slog.Error("failed to save max distance", "user", userID, "error", err)
			b.reply(chatID, "❌ Could not save the filter, try again")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ Maximum distance set: %v km", value))
	}
}

// updateFilter does a whole-record load, one-field mutation, and save.
// Last-write-wins; a concurrent matching pass may read the previous record.
func (b *Bot) updateFilter(ctx context.Context, userID string, mutate func(*model.UserFilter)) error {
	filters, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load filters: %w", err)
	}

	f := filters[userID]
	mutate(&f)
	filters[userID] = f

	if err := b.store.Save(ctx, filters); err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	return nil
}

func (b *Bot) handleTest(chatID int64) {
	order := parser.Parse(testMessage)
	if order == nil {
		b.reply(chatID, "❌ Could not parse the test message")
		return
	}
	b.reply(chatID, fmt.Sprintf(
		"✅ *Parser test passed!*\nPrice: %.2f €\nFrom: %s\nTo: %s",
		order.Price, order.From, order.To,
	))
}

func (b *Bot) setState(chatID int64, state sessionState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[chatID] = state
}

// takeState reads and clears the session state in one step; each prompt
// consumes exactly one follow-up message.
func (b *Bot) takeState(chatID int64) sessionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	state := b.sessions[chatID]
	delete(b.sessions, chatID)
	return state
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("failed to send reply", "chat", chatID, "error", err)
	}
}
