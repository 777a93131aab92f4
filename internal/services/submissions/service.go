package submissions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/repo/postgres"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/broadcast"
)

var (
	// ErrEmptyCaption is returned for a media submission with no text body.
	ErrEmptyCaption = errors.New("media submission without caption")

	// ErrNotFound is returned when a decision targets an unknown submission.
	ErrNotFound = errors.New("submission not found")

	// ErrInvalidTransition is returned when a decision targets a submission
	// that already left PENDING. The stored outcome is never touched.
	ErrInvalidTransition = errors.New("submission already decided")
)

// WordCountError reports a body outside the configured word bounds.
type WordCountError struct {
	Words    int
	Min      int
	Max      int
	TooShort bool
}

func (e *WordCountError) Error() string {
	if e.TooShort {
		return fmt.Sprintf("body has %d words, minimum is %d", e.Words, e.Min)
	}
	return fmt.Sprintf("body has %d words, maximum is %d", e.Words, e.Max)
}

type Repo interface {
	Create(ctx context.Context, authorID int64, body, photoID, videoID string) (int64, error)
	GetByID(ctx context.Context, id int64) (model.Submission, error)
	ListPending(ctx context.Context) ([]model.Submission, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]model.Submission, error)
	MarkApproved(ctx context.Context, id, reviewerID int64, comment string) error
	MarkRejected(ctx context.Context, id, reviewerID int64, reason string) error
	RejectionReasons(ctx context.Context, ids []int64) (map[int64]string, error)
}

type RateLimiter interface {
	CheckAndRecord(ctx context.Context, userID int64, now time.Time) error
}

type SettingsSource interface {
	Get(ctx context.Context) (model.Settings, error)
}

type Bounds struct {
	MinWords    int
	MaxWords    int
	StatusLimit int
}

// Service owns the submission lifecycle: intake validation on the way in,
// the PENDING to APPROVED/REJECTED transition on the way out. Side effects
// of a decision are returned as intents so delivery stays with the caller
// and a failed send never rolls back a recorded decision.
type Service struct {
	repo     Repo
	limiter  RateLimiter
	settings SettingsSource
	bounds   Bounds
	now      func() time.Time
}

func NewService(repo Repo, limiter RateLimiter, settings SettingsSource, bounds Bounds) *Service {
	return &Service{
		repo:     repo,
		limiter:  limiter,
		settings: settings,
		bounds:   bounds,
		now:      time.Now,
	}
}

type SubmitInput struct {
	AuthorID int64
	Body     string
	PhotoID  string
	VideoID  string

	// Privileged submitters skip the cooldown. The decision who is
	// privileged belongs to the caller, not the limiter.
	Privileged bool
}

// Submit validates and stores a new PENDING submission. Shape checks run
// before the cooldown so a malformed attempt never consumes the window.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	if s.repo == nil {
		return 0, fmt.Errorf("submission repo is not configured")
	}
	if in.AuthorID <= 0 {
		return 0, fmt.Errorf("invalid author id")
	}
	if in.PhotoID != "" && in.VideoID != "" {
		return 0, fmt.Errorf("submission carries both photo and video")
	}

	body := strings.TrimSpace(in.Body)
	if body == "" && (in.PhotoID != "" || in.VideoID != "") {
		return 0, ErrEmptyCaption
	}

	words := len(strings.Fields(body))
	if words < s.bounds.MinWords {
		return 0, &WordCountError{Words: words, Min: s.bounds.MinWords, Max: s.bounds.MaxWords, TooShort: true}
	}
	if words > s.bounds.MaxWords {
		return 0, &WordCountError{Words: words, Min: s.bounds.MinWords, Max: s.bounds.MaxWords}
	}

	if !in.Privileged && s.limiter != nil {
		if err := s.limiter.CheckAndRecord(ctx, in.AuthorID, s.now()); err != nil {
			return 0, err
		}
	}

	id, err := s.repo.Create(ctx, in.AuthorID, body, in.PhotoID, in.VideoID)
	if err != nil {
		return 0, fmt.Errorf("store submission: %w", err)
	}
	return id, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (model.Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, postgres.ErrSubmissionNotFound) {
		return model.Submission{}, ErrNotFound
	}
	return sub, err
}

func (s *Service) ListPending(ctx context.Context) ([]model.Submission, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) ListByAuthor(ctx context.Context, authorID int64) ([]model.Submission, error) {
	return s.repo.ListByAuthor(ctx, authorID, s.bounds.StatusLimit)
}

// RejectionReasons resolves stored reasons for the given ids. Ids that are
// unknown or not rejected are simply absent from the result.
func (s *Service) RejectionReasons(ctx context.Context, ids []int64) (map[int64]string, error) {
	return s.repo.RejectionReasons(ctx, ids)
}

// PublishIntent describes the single channel dispatch an approval produces.
type PublishIntent struct {
	ChatID  int64
	Payload broadcast.Payload
}

// NotifyIntent describes the author notification a decision produces.
type NotifyIntent struct {
	ChatID int64
	Text   string
}

// Decision is the outcome of Approve or Reject. Publish is nil on reject.
type Decision struct {
	Submission model.Submission
	Publish    *PublishIntent
	Notify     NotifyIntent
}

// Approve moves a PENDING submission to APPROVED and returns the publish
// and notify intents. The transition is guarded in storage, so a repeated
// decision surfaces as ErrInvalidTransition and produces no intents.
func (s *Service) Approve(ctx context.Context, id, reviewerID int64, comment string) (Decision, error) {
	if err := s.markDecided(ctx, func() error {
		return s.repo.MarkApproved(ctx, id, reviewerID, strings.TrimSpace(comment))
	}); err != nil {
		return Decision{}, err
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Decision{}, fmt.Errorf("load approved submission: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("read channel settings: %w", err)
	}

	decision := Decision{
		Submission: sub,
		Publish: &PublishIntent{
			ChatID:  settings.ChannelChatID,
			Payload: channelPayload(sub),
		},
		Notify: NotifyIntent{
			ChatID: sub.AuthorID,
			Text:   approvedNotice(sub),
		},
	}
	return decision, nil
}

// Reject moves a PENDING submission to REJECTED, storing the reason.
func (s *Service) Reject(ctx context.Context, id, reviewerID int64, reason string) (Decision, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Decision{}, fmt.Errorf("rejection reason is empty")
	}

	if err := s.markDecided(ctx, func() error {
		return s.repo.MarkRejected(ctx, id, reviewerID, reason)
	}); err != nil {
		return Decision{}, err
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Decision{}, fmt.Errorf("load rejected submission: %w", err)
	}

	return Decision{
		Submission: sub,
		Notify: NotifyIntent{
			ChatID: sub.AuthorID,
			Text:   rejectedNotice(sub),
		},
	}, nil
}

func (s *Service) markDecided(ctx context.Context, mark func() error) error {
	err := mark()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, postgres.ErrSubmissionNotFound):
		return ErrNotFound
	case errors.Is(err, postgres.ErrSubmissionNotPending):
		return ErrInvalidTransition
	default:
		return fmt.Errorf("record decision: %w", err)
	}
}

func channelPayload(sub model.Submission) broadcast.Payload {
	text := fmt.Sprintf("Заявка #%d одобрена. Текст заявки:\n%s", sub.ID, sub.Body)
	switch {
	case sub.PhotoID != "":
		return broadcast.PhotoPayload(sub.PhotoID, text)
	case sub.VideoID != "":
		return broadcast.VideoPayload(sub.VideoID, text)
	default:
		return broadcast.TextPayload(text)
	}
}

func approvedNotice(sub model.Submission) string {
	text := fmt.Sprintf("Ваша заявка #%d была одобрена и опубликована на канале.", sub.ID)
	if sub.AcceptComment != "" {
		text += "\nКомментарий модератора: " + sub.AcceptComment
	}
	return text
}

func rejectedNotice(sub model.Submission) string {
	reason := sub.RejectionReason
	if reason == "" {
		reason = "не указана"
	}
	return fmt.Sprintf("Ваша заявка #%d была отклонена по следующей причине: %s", sub.ID, reason)
}
