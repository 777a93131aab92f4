package app

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/ui"
)

func (a *App) handlers() telegram.Handlers {
	return telegram.Handlers{
		OnCommand:  a.handleCommand,
		OnMessage:  a.handleMessage,
		OnCallback: a.handleCallback,
	}
}

func (a *App) handleCommand(ctx context.Context, cmd telegram.CommandUpdate) error {
	switch cmd.Command {
	case "start":
		a.handleStart(ctx, cmd)
	case "get":
		a.handleGetChatID(ctx, cmd)
	default:
		a.sendText(ctx, cmd.ChatID, "Неизвестная команда. Используйте /start")
	}
	return nil
}

func (a *App) handleStart(ctx context.Context, cmd telegram.CommandUpdate) {
	if err := a.usersRepo.Upsert(ctx, model.BotUser{
		TgID:      cmd.UserID,
		Username:  cmd.Username,
		FirstName: cmd.FirstName,
	}); err != nil {
		a.logger.Error("upsert bot user", zap.Int64("tg_id", cmd.UserID), zap.Error(err))
	}

	a.conv.Cancel(cmd.ChatID)
	text, menu := ui.RenderStart(a.registry.RoleOf(cmd.UserID))
	a.sendMenu(ctx, cmd.ChatID, text, menu)
}

// handleGetChatID reports the current chat id, used from groups and channels
// to read the id that goes into the channel setting.
func (a *App) handleGetChatID(ctx context.Context, cmd telegram.CommandUpdate) {
	if err := a.registry.RequireModerator(cmd.UserID); err != nil {
		a.sendText(ctx, cmd.ChatID, ui.NotAllowedMessage())
		return
	}
	a.sendText(ctx, cmd.ChatID, "ID этого чата: "+strconv.FormatInt(cmd.ChatID, 10))
}

func (a *App) handleMessage(ctx context.Context, msg telegram.MessageUpdate) error {
	if state, ok := a.conv.Resolve(msg.ChatID); ok {
		a.handleContinuation(ctx, state, msg)
		return nil
	}
	a.handleMenuMessage(ctx, msg)
	return nil
}

func (a *App) handleContinuation(ctx context.Context, state conversations.State, msg telegram.MessageUpdate) {
	if strings.EqualFold(msg.Text, ui.BtnMainMenu) || strings.EqualFold(msg.Text, ui.BtnBack) {
		a.sendStartMenu(ctx, msg.ChatID, msg.UserID)
		return
	}

	switch state.Kind {
	case conversations.KindSubmission:
		a.continueSubmission(ctx, msg)
	case conversations.KindAcceptComment:
		a.continueAcceptComment(ctx, state, msg)
	case conversations.KindRejectReason:
		a.continueRejectReason(ctx, state, msg)
	case conversations.KindModeratorID:
		a.continueAddRole(ctx, state, msg)
	case conversations.KindAdminID:
		a.continueAddRole(ctx, state, msg)
	case conversations.KindChannelID:
		a.continueSetChannel(ctx, msg)
	case conversations.KindCooldown:
		a.continueSetCooldown(ctx, msg)
	case conversations.KindBroadcastBody:
		a.continueBroadcast(ctx, msg)
	case conversations.KindPublishBody:
		a.continuePublish(ctx, msg)
	default:
		a.logger.Warn("unknown conversation kind", zap.String("kind", string(state.Kind)))
	}
}

func (a *App) handleMenuMessage(ctx context.Context, msg telegram.MessageUpdate) {
	switch msg.Text {
	case ui.BtnSubmit:
		a.handleSubmitEntry(ctx, msg)
	case ui.BtnLeaveRequest:
		a.handleLeaveRequest(ctx, msg)
	case ui.BtnMainMenu:
		a.sendStartMenu(ctx, msg.ChatID, msg.UserID)
	case ui.BtnAbout:
		a.sendText(ctx, msg.ChatID, ui.AboutMessage())
	case ui.BtnContacts:
		a.sendText(ctx, msg.ChatID, ui.ContactsMessage())
	case ui.BtnStatus:
		a.handleStatusEntry(ctx, msg)
	case ui.BtnReviewQueue:
		a.handleReviewQueue(ctx, msg)
	case ui.BtnSettings:
		a.handleSettingsEntry(ctx, msg)
	case ui.BtnAddModerator:
		a.handleAddRoleEntry(ctx, msg, conversations.KindModeratorID)
	case ui.BtnAddAdmin:
		a.handleAddRoleEntry(ctx, msg, conversations.KindAdminID)
	case ui.BtnSetChannel:
		a.handleSetChannelEntry(ctx, msg)
	case ui.BtnSetCooldown:
		a.handleSetCooldownEntry(ctx, msg)
	case ui.BtnBack:
		a.sendStartMenu(ctx, msg.ChatID, msg.UserID)
	case ui.BtnBroadcast:
		a.handleBroadcastEntry(ctx, msg)
	case ui.BtnPublish:
		a.handlePublishEntry(ctx, msg)
	}
}

func (a *App) handleCallback(ctx context.Context, cb telegram.CallbackUpdate) error {
	parts := strings.Split(cb.Data, ":")
	if len(parts) < 2 {
		a.answerCallback(ctx, cb.CallbackID, "")
		return nil
	}

	switch parts[0] {
	case ui.CallbackPrefixReview:
		a.handleReviewCallback(ctx, cb, parts[1:])
	case ui.CallbackPrefixStatus:
		a.handleStatusCallback(ctx, cb, parts[1:])
	default:
		a.answerCallback(ctx, cb.CallbackID, "")
	}
	return nil
}

func (a *App) sendStartMenu(ctx context.Context, chatID, userID int64) {
	a.conv.Cancel(chatID)
	text, menu := ui.RenderStart(a.registry.RoleOf(userID))
	a.sendMenu(ctx, chatID, text, menu)
}

func (a *App) sendText(ctx context.Context, chatID int64, text string) {
	if err := a.bot.SendText(ctx, chatID, text); err != nil {
		a.logger.Error("send text", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) sendMenu(ctx context.Context, chatID int64, text string, rows [][]string) {
	if err := a.bot.SendMenu(ctx, chatID, text, rows); err != nil {
		a.logger.Error("send menu", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) sendInline(ctx context.Context, chatID int64, text string, rows [][]telegram.InlineButton) {
	if err := a.bot.SendInline(ctx, chatID, text, rows); err != nil {
		a.logger.Error("send inline", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *App) answerCallback(ctx context.Context, callbackID, text string) {
	if err := a.bot.AnswerCallback(ctx, callbackID, text); err != nil {
		a.logger.Error("answer callback", zap.Error(err))
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
