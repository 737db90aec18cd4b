package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	app_service "wallet-checkpoint-monitor/internal/application/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot answers report commands in Telegram chats and delivers scheduled
// reports
type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.TelegramConfig
	commands *app_service.CommandHandler
	logger   *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBot creates a new Telegram bot; Connect must be called before use
func NewBot(cfg *config.TelegramConfig, commands *app_service.CommandHandler, logger *logger.Logger) *Bot {
	return &Bot{
		config:   cfg,
		commands: commands,
		logger:   logger.WithComponent("telegram-bot"),
	}
}

// Connect authenticates against the Bot API and starts polling for updates
func (b *Bot) Connect() error {
	if !b.config.Enabled {
		b.logger.Info("Telegram is disabled, skipping connection")
		return nil
	}
	if b.config.Token == "" {
		return errors.New("telegram token is not configured")
	}

	api, err := tgbotapi.NewBotAPI(b.config.Token)
	if err != nil {
		b.logger.Error("Failed to connect to Telegram", zap.Error(err))
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	b.api = api

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.PollTimeout
	updates := api.GetUpdatesChan(updateConfig)

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	b.wg.Add(1)
	go b.processUpdates(ctx, updates)

	b.logger.Info("Connected to Telegram", zap.String("bot", api.Self.UserName))
	return nil
}

// processUpdates dispatches every command in its own goroutine so a slow
// report never blocks other chats
func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer b.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	var sender string
	if msg.From != nil {
		sender = msg.From.FirstName
	}

	reply, err := b.commands.Handle(ctx, msg.Command(), sender)
	if errors.Is(err, app_service.ErrUnknownCommand) {
		b.logger.Debug("Ignoring unknown command", zap.String("command", msg.Command()))
		return
	}
	if err != nil {
		b.logger.Error("Failed to handle command",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.String("command", msg.Command()),
			zap.Error(err))
		return
	}

	if err := b.send(msg.Chat.ID, reply); err != nil {
		b.logger.Error("Failed to send reply", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}

// Notify implements Notifier; the recipient is a numeric chat ID
func (b *Bot) Notify(ctx context.Context, recipient string, message string) error {
	chatID, err := ParseChatID(recipient)
	if err != nil {
		return err
	}
	return b.send(chatID, message)
}

func (b *Bot) send(chatID int64, text string) error {
	if b.api == nil {
		return errors.New("telegram bot is not connected")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}

// Disconnect stops polling and waits for in-flight commands
func (b *Bot) Disconnect() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	b.logger.Info("Disconnected from Telegram")
}

// ParseChatID converts a configured recipient into a Telegram chat ID
func ParseChatID(recipient string) (int64, error) {
	chatID, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Telegram chat ID %q: %w", recipient, err)
	}
	return chatID, nil
}
