package ui

import (
	"fmt"
	"strings"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
)

func RenderStart(role enums.Role) (string, [][]string) {
	return StartMessage(role), MenuByRole(role)
}

// RenderReviewCard formats one pending submission for the review screen.
// The text doubles as the media caption when the submission carries a file.
func RenderReviewCard(sub model.Submission, authorName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заявка #%d\n", sub.ID)
	if authorName != "" {
		fmt.Fprintf(&b, "Автор: %s (id %d)\n", authorName, sub.AuthorID)
	} else {
		fmt.Fprintf(&b, "Автор: id %d\n", sub.AuthorID)
	}
	fmt.Fprintf(&b, "Отправлена: %s\n\n", sub.CreatedAt.Format("02.01.2006 15:04"))
	b.WriteString(sub.Body)
	return b.String()
}

func RenderStatusLine(sub model.Submission) string {
	return fmt.Sprintf("Заявка #%d от %s: %s",
		sub.ID, sub.CreatedAt.Format("02.01.2006"), statusLabel(sub.Status))
}

func RenderRejectionReason(id int64, reason string) string {
	if strings.TrimSpace(reason) == "" {
		reason = "не указана"
	}
	return fmt.Sprintf("Причина отклонения заявки #%d: %s", id, reason)
}

func statusLabel(status enums.SubmissionStatus) string {
	switch status {
	case enums.StatusPending:
		return "на рассмотрении"
	case enums.StatusApproved:
		return "одобрена"
	case enums.StatusRejected:
		return "отклонена"
	default:
		return string(status)
	}
}
