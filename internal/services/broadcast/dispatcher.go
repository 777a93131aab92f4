package broadcast

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender delivers one payload to one chat. The Telegram client satisfies it
// in production; tests use a recording fake.
type Sender interface {
	SendPayload(ctx context.Context, chatID int64, payload Payload) error
}

type Failure struct {
	ChatID int64
	Err    error
}

// Summary is the per-run outcome of a fan-out. RunID ties log lines from one
// run together.
type Summary struct {
	RunID    string
	Total    int
	Sent     int
	Failures []Failure
}

func (s Summary) Failed() int {
	return len(s.Failures)
}

type Dispatcher struct {
	sender Sender
	logger *zap.Logger
}

func NewDispatcher(sender Sender, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Publish sends one payload to one destination, typically the channel.
func (d *Dispatcher) Publish(ctx context.Context, chatID int64, payload Payload) error {
	if d.sender == nil {
		return fmt.Errorf("sender is not configured")
	}
	if chatID == 0 {
		return fmt.Errorf("destination chat id is not set")
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	if err := d.sender.SendPayload(ctx, chatID, payload); err != nil {
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// Broadcast fans the payload out to every chat id. A failed destination is
// recorded and skipped; one blocked recipient never aborts the run.
func (d *Dispatcher) Broadcast(ctx context.Context, chatIDs []int64, payload Payload) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), Total: len(chatIDs)}

	if d.sender == nil {
		return summary, fmt.Errorf("sender is not configured")
	}
	if err := payload.Validate(); err != nil {
		return summary, fmt.Errorf("invalid payload: %w", err)
	}

	d.logger.Info("broadcast started",
		zap.String("run_id", summary.RunID),
		zap.Int("recipients", summary.Total),
		zap.String("payload_kind", string(payload.Kind)),
	)

	for _, chatID := range chatIDs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("broadcast interrupted: %w", err)
		}

		if err := d.sender.SendPayload(ctx, chatID, payload); err != nil {
			summary.Failures = append(summary.Failures, Failure{ChatID: chatID, Err: err})
			d.logger.Warn("broadcast delivery failed",
				zap.String("run_id", summary.RunID),
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			continue
		}
		summary.Sent++
	}

	d.logger.Info("broadcast finished",
		zap.String("run_id", summary.RunID),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed()),
	)

	return summary, nil
}
