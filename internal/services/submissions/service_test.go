package submissions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	"github.com/KamalidenovRustem/KursivMedia/internal/repo/postgres"
	"github.com/KamalidenovRustem/KursivMedia/internal/services/broadcast"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]*model.Submission
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: make(map[int64]*model.Submission)}
}

func (f *fakeRepo) Create(ctx context.Context, authorID int64, body, photoID, videoID string) (int64, error) {
	id := f.nextID
	f.nextID++
	f.items[id] = &model.Submission{
		ID:        id,
		AuthorID:  authorID,
		Body:      body,
		PhotoID:   photoID,
		VideoID:   videoID,
		Status:    enums.StatusPending,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (model.Submission, error) {
	sub, ok := f.items[id]
	if !ok {
		return model.Submission{}, postgres.ErrSubmissionNotFound
	}
	return *sub, nil
}

func (f *fakeRepo) ListPending(ctx context.Context) ([]model.Submission, error) {
	out := make([]model.Submission, 0)
	for _, sub := range f.items {
		if sub.Status == enums.StatusPending {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]model.Submission, error) {
	out := make([]model.Submission, 0)
	for _, sub := range f.items {
		if sub.AuthorID == authorID && len(out) < limit {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkApproved(ctx context.Context, id, reviewerID int64, comment string) error {
	sub, ok := f.items[id]
	if !ok {
		return postgres.ErrSubmissionNotFound
	}
	if sub.Status != enums.StatusPending {
		return postgres.ErrSubmissionNotPending
	}
	sub.Status = enums.StatusApproved
	sub.AcceptComment = comment
	return nil
}

func (f *fakeRepo) MarkRejected(ctx context.Context, id, reviewerID int64, reason string) error {
	sub, ok := f.items[id]
	if !ok {
		return postgres.ErrSubmissionNotFound
	}
	if sub.Status != enums.StatusPending {
		return postgres.ErrSubmissionNotPending
	}
	sub.Status = enums.StatusRejected
	sub.RejectionReason = reason
	return nil
}

func (f *fakeRepo) RejectionReasons(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, id := range ids {
		sub, ok := f.items[id]
		if ok && sub.Status == enums.StatusRejected {
			out[id] = sub.RejectionReason
		}
	}
	return out, nil
}

type fakeLimiter struct {
	calls int
	err   error
}

func (f *fakeLimiter) CheckAndRecord(ctx context.Context, userID int64, now time.Time) error {
	f.calls++
	return f.err
}

type fakeSettings struct {
	channelChatID int64
}

func (f *fakeSettings) Get(ctx context.Context) (model.Settings, error) {
	return model.Settings{ChannelChatID: f.channelChatID, CooldownSeconds: 60}, nil
}

func newTestService(repo Repo, limiter RateLimiter) *Service {
	return NewService(repo, limiter, &fakeSettings{channelChatID: -100123}, Bounds{
		MinWords:    20,
		MaxWords:    400,
		StatusLimit: 10,
	})
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("слово%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSubmitWordBounds(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		wantErr  bool
		tooShort bool
	}{
		{name: "far_below_min", words: 5, wantErr: true, tooShort: true},
		{name: "below_min", words: 19, wantErr: true, tooShort: true},
		{name: "at_min", words: 20},
		{name: "at_max", words: 400},
		{name: "above_max", words: 401, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, &fakeLimiter{})

			_, err := svc.Submit(context.Background(), SubmitInput{
				AuthorID: 42,
				Body:     words(tt.words),
			})

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error for %d words: %v", tt.words, err)
				}
				return
			}

			var wordErr *WordCountError
			if !errors.As(err, &wordErr) {
				t.Fatalf("expected WordCountError for %d words, got %v", tt.words, err)
			}
			if wordErr.TooShort != tt.tooShort {
				t.Fatalf("unexpected TooShort: got %v want %v", wordErr.TooShort, tt.tooShort)
			}
			if len(repo.items) != 0 {
				t.Fatalf("rejected submission must not be stored")
			}
		})
	}
}

func TestSubmitMediaRequiresCaption(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})

	_, err := svc.Submit(context.Background(), SubmitInput{
		AuthorID: 42,
		PhotoID:  "photo-file-id",
	})
	if !errors.Is(err, ErrEmptyCaption) {
		t.Fatalf("expected ErrEmptyCaption, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("captionless media must not be stored")
	}
}

func TestSubmitChecksShapeBeforeCooldown(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("should not be called")}
	svc := newTestService(newFakeRepo(), limiter)

	_, err := svc.Submit(context.Background(), SubmitInput{
		AuthorID: 42,
		PhotoID:  "photo-file-id",
	})
	if !errors.Is(err, ErrEmptyCaption) {
		t.Fatalf("expected ErrEmptyCaption, got %v", err)
	}
	if limiter.calls != 0 {
		t.Fatalf("limiter must not run before shape checks pass, got %d calls", limiter.calls)
	}
}

func TestSubmitCooldownDeniedNothingStored(t *testing.T) {
	repo := newFakeRepo()
	limiterErr := errors.New("cooldown active")
	svc := newTestService(repo, &fakeLimiter{err: limiterErr})

	_, err := svc.Submit(context.Background(), SubmitInput{
		AuthorID: 42,
		Body:     words(30),
	})
	if !errors.Is(err, limiterErr) {
		t.Fatalf("expected limiter error passthrough, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("denied submission must not be stored")
	}
}

func TestSubmitPrivilegedSkipsCooldown(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("cooldown active")}
	svc := newTestService(newFakeRepo(), limiter)

	_, err := svc.Submit(context.Background(), SubmitInput{
		AuthorID:   42,
		Body:       words(30),
		Privileged: true,
	})
	if err != nil {
		t.Fatalf("privileged submit: %v", err)
	}
	if limiter.calls != 0 {
		t.Fatalf("limiter must not run for privileged submitters")
	}
}

func TestApproveProducesPublishAndNotifyIntents(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{AuthorID: 42, Body: words(30), PhotoID: "photo-file-id"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decision, err := svc.Approve(ctx, id, 100, "хороший материал")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if decision.Publish == nil {
		t.Fatalf("expected publish intent")
	}
	if decision.Publish.ChatID != -100123 {
		t.Fatalf("unexpected publish chat id: %d", decision.Publish.ChatID)
	}
	if decision.Publish.Payload.Kind != broadcast.PayloadPhoto {
		t.Fatalf("expected photo payload, got %s", decision.Publish.Payload.Kind)
	}
	if decision.Notify.ChatID != 42 {
		t.Fatalf("notify must target the author, got %d", decision.Notify.ChatID)
	}
	if !strings.Contains(decision.Notify.Text, "хороший материал") {
		t.Fatalf("notify text must carry the comment: %q", decision.Notify.Text)
	}
	if repo.items[id].Status != enums.StatusApproved {
		t.Fatalf("unexpected status: %s", repo.items[id].Status)
	}
}

func TestApproveIsTerminalOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{AuthorID: 42, Body: words(30)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(ctx, id, 100, ""); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	if _, err := svc.Approve(ctx, id, 100, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}
	if _, err := svc.Reject(ctx, id, 100, "поздно"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on reject after approve, got %v", err)
	}
	if repo.items[id].Status != enums.StatusApproved {
		t.Fatalf("terminal status must not change, got %s", repo.items[id].Status)
	}
}

func TestRejectStoresReasonAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{AuthorID: 42, Body: words(30)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decision, err := svc.Reject(ctx, id, 100, "Рекламный материал")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	if decision.Publish != nil {
		t.Fatalf("reject must not produce a publish intent")
	}
	if !strings.Contains(decision.Notify.Text, "Рекламный материал") {
		t.Fatalf("notify text must carry the reason: %q", decision.Notify.Text)
	}
	if repo.items[id].RejectionReason != "Рекламный материал" {
		t.Fatalf("reason not stored: %q", repo.items[id].RejectionReason)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{AuthorID: 42, Body: words(30)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Reject(ctx, id, 100, "   "); err == nil {
		t.Fatalf("expected error for blank reason")
	}
	if repo.items[id].Status != enums.StatusPending {
		t.Fatalf("submission must stay pending after invalid reject")
	}
}

func TestDecisionOnUnknownSubmission(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeLimiter{})

	if _, err := svc.Approve(context.Background(), 999, 100, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectionReasonsSkipsUnknownIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLimiter{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{AuthorID: 42, Body: words(30)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Reject(ctx, id, 100, "причина"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	reasons, err := svc.RejectionReasons(ctx, []int64{id, 777})
	if err != nil {
		t.Fatalf("rejection reasons: %v", err)
	}
	if len(reasons) != 1 || reasons[id] != "причина" {
		t.Fatalf("unexpected reasons map: %v", reasons)
	}
}
