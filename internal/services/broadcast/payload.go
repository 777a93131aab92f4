package broadcast

import "fmt"

type PayloadKind string

const (
	PayloadText  PayloadKind = "TEXT"
	PayloadPhoto PayloadKind = "PHOTO"
	PayloadVideo PayloadKind = "VIDEO"
)

// Payload is a single outbound message: plain text, or one media attachment
// referenced by Telegram file id with Text as its caption. Exactly one
// attachment is allowed; mixed media is rejected up front.
type Payload struct {
	Kind    PayloadKind
	Text    string
	PhotoID string
	VideoID string
}

func TextPayload(text string) Payload {
	return Payload{Kind: PayloadText, Text: text}
}

func PhotoPayload(fileID, caption string) Payload {
	return Payload{Kind: PayloadPhoto, PhotoID: fileID, Text: caption}
}

func VideoPayload(fileID, caption string) Payload {
	return Payload{Kind: PayloadVideo, VideoID: fileID, Text: caption}
}

func (p Payload) Validate() error {
	switch p.Kind {
	case PayloadText:
		if p.Text == "" {
			return fmt.Errorf("text payload is empty")
		}
		if p.PhotoID != "" || p.VideoID != "" {
			return fmt.Errorf("text payload carries media")
		}
	case PayloadPhoto:
		if p.PhotoID == "" {
			return fmt.Errorf("photo payload has no file id")
		}
		if p.VideoID != "" {
			return fmt.Errorf("photo payload carries video")
		}
	case PayloadVideo:
		if p.VideoID == "" {
			return fmt.Errorf("video payload has no file id")
		}
		if p.PhotoID != "" {
			return fmt.Errorf("video payload carries photo")
		}
	default:
		return fmt.Errorf("unknown payload kind %q", p.Kind)
	}
	return nil
}
