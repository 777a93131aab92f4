package app

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/ui"
)

func (a *App) handleSettingsEntry(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireAdmin(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}
	a.sendMenu(ctx, msg.ChatID, "Настройки бота:", ui.SettingsMenu())
}

func (a *App) handleAddRoleEntry(ctx context.Context, msg telegram.MessageUpdate, kind conversations.Kind) {
	if err := a.registry.RequireAdmin(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    kind,
		ActorID: msg.UserID,
	})
	if kind == conversations.KindAdminID {
		a.sendText(ctx, msg.ChatID, "Отправьте Telegram ID нового администратора.")
		return
	}
	a.sendText(ctx, msg.ChatID, "Отправьте Telegram ID нового модератора.")
}

func (a *App) continueAddRole(ctx context.Context, state conversations.State, msg telegram.MessageUpdate) {
	id, ok := parseID(msg.Text)
	if !ok {
		a.conv.Await(msg.ChatID, state)
		a.sendText(ctx, msg.ChatID, "Это не похоже на Telegram ID. Отправьте число.")
		return
	}

	var err error
	var granted string
	if state.Kind == conversations.KindAdminID {
		err = a.registry.AddAdmin(ctx, id, state.ActorID)
		granted = "Вы назначены администратором бота."
	} else {
		err = a.registry.AddModerator(ctx, id, state.ActorID)
		granted = "Вы назначены модератором бота."
	}
	if err != nil {
		a.logger.Error("grant role", zap.Int64("tg_id", id), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось сохранить роль, попробуйте ещё раз.")
		return
	}

	a.logger.Info("role granted",
		zap.Int64("tg_id", id),
		zap.Int64("granted_by", state.ActorID),
		zap.String("kind", string(state.Kind)),
	)
	if err := a.bot.SendText(ctx, id, granted); err != nil {
		a.logger.Warn("notify new role holder", zap.Int64("tg_id", id), zap.Error(err))
	}
	a.sendMenu(ctx, msg.ChatID, "Готово, роль выдана.", ui.SettingsMenu())
}

func (a *App) handleSetChannelEntry(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireAdmin(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindChannelID,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID,
		"Отправьте ID канала или группы для публикаций. Узнать ID можно командой /get в нужном чате.")
}

func (a *App) continueSetChannel(ctx context.Context, msg telegram.MessageUpdate) {
	// Channel and supergroup ids are negative, so plain ParseInt without
	// the positivity check used for user ids.
	id, err := strconv.ParseInt(msg.Text, 10, 64)
	if err != nil || id == 0 {
		a.conv.Await(msg.ChatID, conversations.State{
			Kind:    conversations.KindChannelID,
			ActorID: msg.UserID,
		})
		a.sendText(ctx, msg.ChatID, "Это не похоже на ID чата. Отправьте число.")
		return
	}

	if err := a.settingsRepo.SetChannelChatID(ctx, id); err != nil {
		a.logger.Error("set channel chat id", zap.Int64("chat_id", id), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось сохранить настройку, попробуйте ещё раз.")
		return
	}

	a.logger.Info("channel changed", zap.Int64("chat_id", id), zap.Int64("changed_by", msg.UserID))
	a.sendMenu(ctx, msg.ChatID, "Канал для публикаций обновлён.", ui.SettingsMenu())
}

func (a *App) handleSetCooldownEntry(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireAdmin(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindCooldown,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID, "Отправьте новый интервал между заявками в секундах (0 отключает ограничение).")
}

func (a *App) continueSetCooldown(ctx context.Context, msg telegram.MessageUpdate) {
	seconds, err := strconv.ParseInt(msg.Text, 10, 64)
	if err != nil || seconds < 0 {
		a.conv.Await(msg.ChatID, conversations.State{
			Kind:    conversations.KindCooldown,
			ActorID: msg.UserID,
		})
		a.sendText(ctx, msg.ChatID, "Нужно неотрицательное число секунд.")
		return
	}

	if err := a.settingsRepo.SetCooldownSeconds(ctx, seconds); err != nil {
		a.logger.Error("set cooldown seconds", zap.Int64("seconds", seconds), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось сохранить настройку, попробуйте ещё раз.")
		return
	}

	a.logger.Info("cooldown changed", zap.Int64("seconds", seconds), zap.Int64("changed_by", msg.UserID))
	a.sendMenu(ctx, msg.ChatID, "Интервал отправки заявок обновлён.", ui.SettingsMenu())
}
