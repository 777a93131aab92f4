package broadcast

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeSender struct {
	sent   []int64
	failOn map[int64]error
}

func (f *fakeSender) SendPayload(ctx context.Context, chatID int64, payload Payload) error {
	if err, ok := f.failOn[chatID]; ok {
		return err
	}
	f.sent = append(f.sent, chatID)
	return nil
}

func TestBroadcastContinuesPastFailures(t *testing.T) {
	sender := &fakeSender{failOn: map[int64]error{
		2: fmt.Errorf("blocked by user"),
	}}
	d := NewDispatcher(sender, nil)

	summary, err := d.Broadcast(context.Background(), []int64{1, 2, 3}, TextPayload("всем привет"))
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	if summary.Total != 3 || summary.Sent != 2 || summary.Failed() != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Failures[0].ChatID != 2 {
		t.Fatalf("unexpected failed chat: %d", summary.Failures[0].ChatID)
	}
	if len(sender.sent) != 2 || sender.sent[0] != 1 || sender.sent[1] != 3 {
		t.Fatalf("delivery must continue past the failed destination: %v", sender.sent)
	}
	if summary.RunID == "" {
		t.Fatalf("expected run id")
	}
}

func TestBroadcastRejectsInvalidPayload(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, nil)

	_, err := d.Broadcast(context.Background(), []int64{1}, Payload{Kind: PayloadText})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("invalid payload must not be sent")
	}
}

func TestBroadcastStopsOnCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Broadcast(ctx, []int64{1, 2}, TextPayload("текст"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("no deliveries expected after cancellation")
	}
}

func TestPublishRequiresDestination(t *testing.T) {
	d := NewDispatcher(&fakeSender{}, nil)

	if err := d.Publish(context.Background(), 0, TextPayload("текст")); err == nil {
		t.Fatalf("expected error for unset destination")
	}
}

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		wantErr bool
	}{
		{name: "text", payload: TextPayload("текст")},
		{name: "photo", payload: PhotoPayload("file-id", "подпись")},
		{name: "video", payload: VideoPayload("file-id", "подпись")},
		{name: "empty_text", payload: Payload{Kind: PayloadText}, wantErr: true},
		{name: "photo_without_file", payload: Payload{Kind: PayloadPhoto, Text: "подпись"}, wantErr: true},
		{name: "mixed_media", payload: Payload{Kind: PayloadPhoto, PhotoID: "a", VideoID: "b"}, wantErr: true},
		{name: "unknown_kind", payload: Payload{Kind: "STICKER"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
