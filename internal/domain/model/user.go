package model

import "time"

type BotUser struct {
	TgID        int64
	FirstName   string
	Username    string
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}
