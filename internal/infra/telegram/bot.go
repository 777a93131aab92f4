package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
}

type CommandUpdate struct {
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Command   string
	Args      string
	ChatType  string
}

// MessageUpdate carries a non-command message. Media messages arrive with
// Text empty and the body in Caption; Body() folds the two together.
type MessageUpdate struct {
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Text      string
	Caption   string
	PhotoID   string
	VideoID   string
}

func (m MessageUpdate) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

func (m MessageUpdate) HasMedia() bool {
	return m.PhotoID != "" || m.VideoID != ""
}

type CallbackUpdate struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	UserID     int64
	Username   string
	Data       string
}

type Handlers struct {
	OnCommand  func(context.Context, CommandUpdate) error
	OnMessage  func(context.Context, MessageUpdate) error
	OnCallback func(context.Context, CallbackUpdate) error
}

// InlineButton is one callback button; Data travels back in CallbackUpdate.
type InlineButton struct {
	Text string
	Data string
}

func NewBot(token string, pollTimeout int) (*Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if pollTimeout <= 0 {
		pollTimeout = 30
	}

	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}

	return &Bot{api: api, pollTimeout: pollTimeout}, nil
}

func (b *Bot) Listen(ctx context.Context, handlers Handlers) error {
	if b == nil || b.api == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(updateCfg)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			if update.Message != nil && update.Message.From != nil {
				if update.Message.IsCommand() && handlers.OnCommand != nil {
					err := handlers.OnCommand(ctx, CommandUpdate{
						ChatID:    update.Message.Chat.ID,
						UserID:    update.Message.From.ID,
						Username:  update.Message.From.UserName,
						FirstName: update.Message.From.FirstName,
						Command:   update.Message.Command(),
						Args:      update.Message.CommandArguments(),
						ChatType:  update.Message.Chat.Type,
					})
					if err != nil {
						return err
					}
					continue
				}

				if handlers.OnMessage != nil {
					msg := MessageUpdate{
						ChatID:    update.Message.Chat.ID,
						UserID:    update.Message.From.ID,
						Username:  update.Message.From.UserName,
						FirstName: update.Message.From.FirstName,
						Text:      strings.TrimSpace(update.Message.Text),
						Caption:   strings.TrimSpace(update.Message.Caption),
					}
					if len(update.Message.Photo) > 0 {
						msg.PhotoID = update.Message.Photo[len(update.Message.Photo)-1].FileID
					}
					if update.Message.Video != nil {
						msg.VideoID = update.Message.Video.FileID
					}
					if msg.Text == "" && msg.Caption == "" && !msg.HasMedia() {
						continue
					}
					if err := handlers.OnMessage(ctx, msg); err != nil {
						return err
					}
				}
				continue
			}

			if update.CallbackQuery != nil && update.CallbackQuery.From != nil && handlers.OnCallback != nil {
				chatID := int64(0)
				messageID := 0
				if update.CallbackQuery.Message != nil {
					chatID = update.CallbackQuery.Message.Chat.ID
					messageID = update.CallbackQuery.Message.MessageID
				}
				err := handlers.OnCallback(ctx, CallbackUpdate{
					CallbackID: update.CallbackQuery.ID,
					ChatID:     chatID,
					MessageID:  messageID,
					UserID:     update.CallbackQuery.From.ID,
					Username:   update.CallbackQuery.From.UserName,
					Data:       update.CallbackQuery.Data,
				})
				if err != nil {
					return err
				}
			}
		}
	}
}

func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	return b.send(ctx, tgbotapi.NewMessage(chatID, text), chatID)
}

// SendMenu sends text with a persistent reply keyboard built from rows of
// button labels.
func (b *Bot) SendMenu(ctx context.Context, chatID int64, text string, rows [][]string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = replyKeyboard(rows)
	return b.send(ctx, msg, chatID)
}

func (b *Bot) SendInline(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = inlineKeyboard(rows)
	return b.send(ctx, msg, chatID)
}

func (b *Bot) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, rows [][]InlineButton) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	msg.Caption = caption
	if len(rows) > 0 {
		msg.ReplyMarkup = inlineKeyboard(rows)
	}
	return b.send(ctx, msg, chatID)
}

func (b *Bot) SendVideo(ctx context.Context, chatID int64, fileID, caption string, rows [][]InlineButton) error {
	msg := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
	msg.Caption = caption
	if len(rows) > 0 {
		msg.ReplyMarkup = inlineKeyboard(rows)
	}
	return b.send(ctx, msg, chatID)
}

func (b *Bot) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if b == nil || b.api == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if strings.TrimSpace(callbackID) == "" {
		return nil
	}

	cfg := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	_ = ctx
	return nil
}

// ClearInlineKeyboard strips the buttons off a reviewed card so a double tap
// has nothing left to press.
func (b *Bot) ClearInlineKeyboard(ctx context.Context, chatID int64, messageID int) error {
	if b == nil || b.api == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if chatID == 0 || messageID == 0 {
		return nil
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Request(edit); err != nil {
		return fmt.Errorf("clear inline keyboard: %w", err)
	}

	_ = ctx
	return nil
}

// DisplayName resolves a human-readable name for a chat id, for review cards.
func (b *Bot) DisplayName(ctx context.Context, chatID int64) (string, error) {
	if b == nil || b.api == nil {
		return "", fmt.Errorf("telegram bot is not initialized")
	}

	chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return "", fmt.Errorf("get chat %d: %w", chatID, err)
	}

	_ = ctx
	if chat.UserName != "" {
		return "@" + chat.UserName, nil
	}
	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name == "" {
		name = chat.Title
	}
	return name, nil
}

func (b *Bot) send(ctx context.Context, msg tgbotapi.Chattable, chatID int64) error {
	if b == nil || b.api == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	_ = ctx
	return nil
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		keyboard = append(keyboard, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(keyboard...)
	markup.ResizeKeyboard = true
	return markup
}

func inlineKeyboard(rows [][]InlineButton) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
