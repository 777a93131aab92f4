package ui

import (
	"fmt"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/infra/telegram"
)

// Callback data follows "prefix:action:args". The review prefix covers the
// moderation card buttons; the status prefix covers the submitter's own
// history screen.
const (
	CallbackPrefixReview = "req"
	CallbackPrefixStatus = "status"
)

// RejectReasonOption is one canned rejection reason. The OTHER code switches
// the flow to free-text input instead of rejecting immediately.
type RejectReasonOption struct {
	Code  string
	Label string
}

const RejectReasonOther = "OTHER"

func RejectReasonOptions() []RejectReasonOption {
	return []RejectReasonOption{
		{Code: "FORMAT", Label: "Не соответствует требованиям к материалу"},
		{Code: "DUPLICATE", Label: "Материал уже публиковался"},
		{Code: "UNRELIABLE", Label: "Недостоверная информация"},
		{Code: "AD", Label: "Рекламный материал"},
		{Code: RejectReasonOther, Label: "Другая причина"},
	}
}

func RejectReasonLabel(code string) (string, bool) {
	for _, opt := range RejectReasonOptions() {
		if opt.Code == code {
			return opt.Label, true
		}
	}
	return "", false
}

func ReviewButtons(submissionID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "Одобрить", Data: fmt.Sprintf("%s:approve:%d", CallbackPrefixReview, submissionID)},
			{Text: "Отклонить", Data: fmt.Sprintf("%s:reject:%d", CallbackPrefixReview, submissionID)},
		},
		{
			{Text: "Заблокировать автора", Data: fmt.Sprintf("%s:ban:%d", CallbackPrefixReview, submissionID)},
		},
	}
}

func RejectReasonButtons(submissionID int64) [][]telegram.InlineButton {
	options := RejectReasonOptions()
	rows := make([][]telegram.InlineButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []telegram.InlineButton{{
			Text: opt.Label,
			Data: fmt.Sprintf("%s:reason:%d:%s", CallbackPrefixReview, submissionID, opt.Code),
		}})
	}
	return rows
}

// StatusButtons returns a reason button for rejected submissions, nothing
// otherwise.
func StatusButtons(sub model.Submission) [][]telegram.InlineButton {
	if sub.Status != enums.StatusRejected {
		return nil
	}
	return [][]telegram.InlineButton{
		{{Text: "Причина отклонения", Data: fmt.Sprintf("%s:reason:%d", CallbackPrefixStatus, sub.ID)}},
	}
}
