package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/submissions"
	"github.com/KamalidenovRustem/KursivMedia/internal/ui"
)

// skipCommentMark is what a reviewer sends to approve without a comment.
const skipCommentMark = "-"

func (a *App) handleReviewQueue(ctx context.Context, msg telegram.MessageUpdate) {
	if err := a.registry.RequireAdmin(msg.UserID); err != nil {
		a.sendText(ctx, msg.ChatID, ui.NotAllowedMessage())
		return
	}

	subs, err := a.submissions.ListPending(ctx)
	if err != nil {
		a.logger.Error("list pending submissions", zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось получить очередь заявок.")
		return
	}
	if len(subs) == 0 {
		a.sendText(ctx, msg.ChatID, "Новых заявок нет.")
		return
	}

	for _, sub := range subs {
		a.sendReviewCard(ctx, msg.ChatID, sub)
	}
}

func (a *App) sendReviewCard(ctx context.Context, chatID int64, sub model.Submission) {
	authorName, err := a.bot.DisplayName(ctx, sub.AuthorID)
	if err != nil {
		a.logger.Warn("resolve author name", zap.Int64("author_id", sub.AuthorID), zap.Error(err))
	}

	card := ui.RenderReviewCard(sub, authorName)
	buttons := ui.ReviewButtons(sub.ID)

	switch {
	case sub.PhotoID != "":
		err = a.bot.SendPhoto(ctx, chatID, sub.PhotoID, card, buttons)
	case sub.VideoID != "":
		err = a.bot.SendVideo(ctx, chatID, sub.VideoID, card, buttons)
	default:
		err = a.bot.SendInline(ctx, chatID, card, buttons)
	}
	if err != nil {
		a.logger.Error("send review card", zap.Int64("submission_id", sub.ID), zap.Error(err))
	}
}

func (a *App) handleReviewCallback(ctx context.Context, cb telegram.CallbackUpdate, parts []string) {
	if err := a.registry.RequireAdmin(cb.UserID); err != nil {
		a.answerCallback(ctx, cb.CallbackID, ui.NotAllowedMessage())
		return
	}
	if len(parts) < 2 {
		a.answerCallback(ctx, cb.CallbackID, "")
		return
	}
	id, ok := parseID(parts[1])
	if !ok {
		a.answerCallback(ctx, cb.CallbackID, "")
		return
	}

	switch parts[0] {
	case "approve":
		a.startApprove(ctx, cb, id)
	case "reject":
		a.startReject(ctx, cb, id)
	case "reason":
		if len(parts) != 3 {
			a.answerCallback(ctx, cb.CallbackID, "")
			return
		}
		a.handleRejectReasonPick(ctx, cb, id, parts[2])
	case "ban":
		a.handleBanAuthor(ctx, cb, id)
	default:
		a.answerCallback(ctx, cb.CallbackID, "")
	}
}

func (a *App) startApprove(ctx context.Context, cb telegram.CallbackUpdate, id int64) {
	a.clearCardButtons(ctx, cb)
	a.answerCallback(ctx, cb.CallbackID, "")
	a.conv.Await(cb.ChatID, conversations.State{
		Kind:         conversations.KindAcceptComment,
		ActorID:      cb.UserID,
		SubmissionID: id,
	})
	a.sendText(ctx, cb.ChatID,
		"Введите комментарий для автора или отправьте «"+skipCommentMark+"», чтобы одобрить без комментария.")
}

func (a *App) continueAcceptComment(ctx context.Context, state conversations.State, msg telegram.MessageUpdate) {
	comment := msg.Text
	if comment == skipCommentMark {
		comment = ""
	}

	decision, err := a.submissions.Approve(ctx, state.SubmissionID, state.ActorID, comment)
	if err != nil {
		a.reportDecisionError(ctx, msg.ChatID, state.SubmissionID, err)
		return
	}

	a.logger.Info("submission approved",
		zap.Int64("submission_id", state.SubmissionID),
		zap.Int64("reviewer_id", state.ActorID),
	)
	a.deliverDecision(ctx, decision)
	a.sendText(ctx, msg.ChatID, "Заявка одобрена и отправлена на публикацию.")
}

func (a *App) startReject(ctx context.Context, cb telegram.CallbackUpdate, id int64) {
	a.clearCardButtons(ctx, cb)
	a.answerCallback(ctx, cb.CallbackID, "")
	a.sendInline(ctx, cb.ChatID, "Выберите причину отклонения:", ui.RejectReasonButtons(id))
}

func (a *App) handleRejectReasonPick(ctx context.Context, cb telegram.CallbackUpdate, id int64, code string) {
	if code == ui.RejectReasonOther {
		a.clearCardButtons(ctx, cb)
		a.answerCallback(ctx, cb.CallbackID, "")
		a.conv.Await(cb.ChatID, conversations.State{
			Kind:         conversations.KindRejectReason,
			ActorID:      cb.UserID,
			SubmissionID: id,
		})
		a.sendText(ctx, cb.ChatID, "Опишите причину отклонения одним сообщением.")
		return
	}

	label, ok := ui.RejectReasonLabel(code)
	if !ok {
		a.answerCallback(ctx, cb.CallbackID, "Неизвестная причина")
		return
	}

	a.clearCardButtons(ctx, cb)
	a.answerCallback(ctx, cb.CallbackID, "")
	a.finishReject(ctx, cb.ChatID, id, cb.UserID, label)
}

func (a *App) continueRejectReason(ctx context.Context, state conversations.State, msg telegram.MessageUpdate) {
	if msg.Text == "" {
		a.conv.Await(msg.ChatID, state)
		a.sendText(ctx, msg.ChatID, "Причина не может быть пустой, отправьте текст.")
		return
	}
	a.finishReject(ctx, msg.ChatID, state.SubmissionID, state.ActorID, msg.Text)
}

func (a *App) finishReject(ctx context.Context, chatID, id, reviewerID int64, reason string) {
	decision, err := a.submissions.Reject(ctx, id, reviewerID, reason)
	if err != nil {
		a.reportDecisionError(ctx, chatID, id, err)
		return
	}

	a.logger.Info("submission rejected",
		zap.Int64("submission_id", id),
		zap.Int64("reviewer_id", reviewerID),
	)
	a.deliverDecision(ctx, decision)
	a.sendText(ctx, chatID, "Заявка отклонена, автор уведомлён.")
}

// deliverDecision performs the side effects a recorded decision produced.
// Delivery failures are logged and never undo the decision.
func (a *App) deliverDecision(ctx context.Context, decision submissions.Decision) {
	if decision.Publish != nil {
		if err := a.dispatcher.Publish(ctx, decision.Publish.ChatID, decision.Publish.Payload); err != nil {
			a.logger.Error("publish approved submission",
				zap.Int64("submission_id", decision.Submission.ID),
				zap.Error(err),
			)
		}
	}
	if decision.Notify.ChatID != 0 {
		if err := a.bot.SendText(ctx, decision.Notify.ChatID, decision.Notify.Text); err != nil {
			a.logger.Error("notify submission author",
				zap.Int64("submission_id", decision.Submission.ID),
				zap.Int64("author_id", decision.Notify.ChatID),
				zap.Error(err),
			)
		}
	}
}

func (a *App) reportDecisionError(ctx context.Context, chatID, id int64, err error) {
	switch {
	case errors.Is(err, submissions.ErrInvalidTransition):
		a.sendText(ctx, chatID, "Эта заявка уже рассмотрена.")
	case errors.Is(err, submissions.ErrNotFound):
		a.sendText(ctx, chatID, "Заявка не найдена.")
	default:
		a.logger.Error("record decision", zap.Int64("submission_id", id), zap.Error(err))
		a.sendText(ctx, chatID, "Не удалось сохранить решение, попробуйте ещё раз.")
	}
}

func (a *App) handleBanAuthor(ctx context.Context, cb telegram.CallbackUpdate, id int64) {
	sub, err := a.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, submissions.ErrNotFound) {
			a.answerCallback(ctx, cb.CallbackID, "Заявка не найдена")
			return
		}
		a.logger.Error("load submission for ban", zap.Int64("submission_id", id), zap.Error(err))
		a.answerCallback(ctx, cb.CallbackID, "Ошибка, попробуйте ещё раз")
		return
	}

	if err := a.bansRepo.Ban(ctx, sub.AuthorID, "review screen", cb.UserID); err != nil {
		a.logger.Error("ban author", zap.Int64("author_id", sub.AuthorID), zap.Error(err))
		a.answerCallback(ctx, cb.CallbackID, "Не удалось сохранить блокировку")
		return
	}

	a.answerCallback(ctx, cb.CallbackID, "Автор занесён в список заблокированных")
}

func (a *App) clearCardButtons(ctx context.Context, cb telegram.CallbackUpdate) {
	if err := a.bot.ClearInlineKeyboard(ctx, cb.ChatID, cb.MessageID); err != nil {
		a.logger.Warn("clear inline keyboard", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}
