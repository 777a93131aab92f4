package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/KamalidenovRustem/KursivMedia/internal/conversations"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/cooldown"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/submissions"
	"github.com/KamalidenovRustem/KursivMedia/internal/ui"
)

func (a *App) handleSubmitEntry(ctx context.Context, msg telegram.MessageUpdate) {
	a.sendMenu(ctx, msg.ChatID,
		ui.SubmitCriteria(a.cfg.Submissions.MinWords, a.cfg.Submissions.MaxWords),
		ui.SubmitMenu())
}

func (a *App) handleLeaveRequest(ctx context.Context, msg telegram.MessageUpdate) {
	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindSubmission,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID, ui.SubmitPrompt())
}

// continueSubmission runs intake on the material message. Validation
// failures re-arm the same conversation state so the author can retry
// without tapping through the menu again.
func (a *App) continueSubmission(ctx context.Context, msg telegram.MessageUpdate) {
	id, err := a.submissions.Submit(ctx, submissions.SubmitInput{
		AuthorID:   msg.UserID,
		Body:       msg.Body(),
		PhotoID:    msg.PhotoID,
		VideoID:    msg.VideoID,
		Privileged: a.registry.IsModerator(msg.UserID),
	})
	if err != nil {
		a.handleSubmitError(ctx, msg, err)
		return
	}

	a.logger.Info("submission accepted",
		zap.Int64("submission_id", id),
		zap.Int64("author_id", msg.UserID),
	)
	text, menu := ui.RenderStart(a.registry.RoleOf(msg.UserID))
	a.sendMenu(ctx, msg.ChatID, ui.SubmissionAccepted(id)+"\n\n"+text, menu)
}

func (a *App) handleSubmitError(ctx context.Context, msg telegram.MessageUpdate, err error) {
	var wordErr *submissions.WordCountError
	var cooldownErr *cooldown.CooldownError

	switch {
	case errors.Is(err, submissions.ErrEmptyCaption):
		a.retrySubmission(ctx, msg, ui.EmptyCaptionMessage())
	case errors.As(err, &wordErr):
		a.retrySubmission(ctx, msg, ui.WordCountMessage(wordErr.Words, wordErr.Min, wordErr.Max, wordErr.TooShort))
	case errors.As(err, &cooldownErr):
		a.retrySubmission(ctx, msg, ui.CooldownMessage(cooldownErr.Remaining))
	default:
		a.logger.Error("submit failed", zap.Int64("author_id", msg.UserID), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось принять заявку, попробуйте позже.")
	}
}

func (a *App) retrySubmission(ctx context.Context, msg telegram.MessageUpdate, reply string) {
	a.conv.Await(msg.ChatID, conversations.State{
		Kind:    conversations.KindSubmission,
		ActorID: msg.UserID,
	})
	a.sendText(ctx, msg.ChatID, reply)
}

func (a *App) handleStatusEntry(ctx context.Context, msg telegram.MessageUpdate) {
	subs, err := a.submissions.ListByAuthor(ctx, msg.UserID)
	if err != nil {
		a.logger.Error("list author submissions", zap.Int64("author_id", msg.UserID), zap.Error(err))
		a.sendText(ctx, msg.ChatID, "Не удалось получить список заявок, попробуйте позже.")
		return
	}
	if len(subs) == 0 {
		a.sendText(ctx, msg.ChatID, "У вас пока нет заявок.")
		return
	}

	for _, sub := range subs {
		buttons := ui.StatusButtons(sub)
		if len(buttons) > 0 {
			a.sendInline(ctx, msg.ChatID, ui.RenderStatusLine(sub), buttons)
			continue
		}
		a.sendText(ctx, msg.ChatID, ui.RenderStatusLine(sub))
	}
}

func (a *App) handleStatusCallback(ctx context.Context, cb telegram.CallbackUpdate, parts []string) {
	if len(parts) != 2 || parts[0] != "reason" {
		a.answerCallback(ctx, cb.CallbackID, "")
		return
	}
	id, ok := parseID(parts[1])
	if !ok {
		a.answerCallback(ctx, cb.CallbackID, "")
		return
	}

	reasons, err := a.submissions.RejectionReasons(ctx, []int64{id})
	if err != nil {
		a.logger.Error("load rejection reason", zap.Int64("submission_id", id), zap.Error(err))
		a.answerCallback(ctx, cb.CallbackID, "Не удалось получить причину")
		return
	}

	a.answerCallback(ctx, cb.CallbackID, "")
	a.sendText(ctx, cb.ChatID, ui.RenderRejectionReason(id, reasons[id]))
}
