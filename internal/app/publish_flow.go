package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/broadcast"
	"github.com/KamalidenovRustem/KursivMedia/internal/ui"
)

func (a *App) handlePublishEntry(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireModerator(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindPublishBody,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID, "Отправьте сообщение для публикации на канале: текст или фото/видео с подписью.")
}

func (a *App) continuePublish(ctx context.Context, msg telegram.MessageUpdate) {
	payload, err := payloadFromMessage(msg)
	if err != nil {
		a.conv.Await(msg.ChatID, conversations.State{
			Kind:    conversations.KindPublishBody,
			ActorID: msg.UserID,
		})
		a.sendText(ctx, msg.ChatID, "Сообщение пустое. Отправьте текст или медиа с подписью.")
		return
	}

	settings, err := a.settingsRepo.Get(ctx)
	if err != nil {
		a.logger.Error("read settings for publish", zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось прочитать настройки канала.")
		return
	}
	if settings.ChannelChatID == 0 {
		a.sendText(ctx, msg.ChatID, "Канал для публикаций не настроен.")
		return
	}

	if err := a.dispatcher.Publish(ctx, settings.ChannelChatID, payload); err != nil {
		a.logger.Error("publish to channel",
			zap.Int64("channel_chat_id", settings.ChannelChatID),
			zap.Error(err),
		)
		a.sendText(ctx, msg.ChatID, "Не удалось опубликовать сообщение.")
		return
	}

	a.sendText(ctx, msg.ChatID, "Опубликовано на канале.")
}

func (a *App) handleBroadcastEntry(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireModerator(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindBroadcastBody,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID, "Отправьте сообщение для рассылки всем пользователям бота.")
}

func (a *App) continueBroadcast(ctx context.Context, msg telegram.MessageUpdate) {
	payload, err := payloadFromMessage(msg)
	if err != nil {
		a.conv.Await(msg.ChatID, conversations.State{
			Kind:    conversations.KindBroadcastBody,
			ActorID: msg.UserID,
		})
		a.sendText(ctx, msg.ChatID, "Сообщение пустое. Отправьте текст или медиа с подписью.")
		return
	}

	ids, err := a.usersRepo.ListIDs(ctx)
	if err != nil {
		a.logger.Error("list broadcast audience", zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось получить список получателей.")
		return
	}

	summary, err := a.dispatcher.Broadcast(ctx, ids, payload)
	if err != nil {
		a.logger.Error("broadcast", zap.String("run_id", summary.RunID), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Рассылка прервана, см. журнал.")
		return
	}

	a.sendText(ctx, msg.ChatID,
		fmt.Sprintf("Рассылка завершена: доставлено %d из %d, ошибок %d.",
			summary.Sent, summary.Total, summary.Failed()))
}

func payloadFromMessage(msg telegram.MessageUpdate) (broadcast.Payload, error) {
	switch {
	case msg.PhotoID != "":
		return broadcast.PhotoPayload(msg.PhotoID, msg.Body()), nil
	case msg.VideoID != "":
		return broadcast.VideoPayload(msg.VideoID, msg.Body()), nil
	case msg.Body() != "":
		return broadcast.TextPayload(msg.Body()), nil
	default:
		return broadcast.Payload{}, fmt.Errorf("message has no content")
	}
}
