package model

// Settings is the single-row runtime configuration mutated by admin flows:
// the destination channel for approved material and the per-user submission
// cooldown. Read on every submit/approve/publish operation, never cached.
type Settings struct {
	ChannelChatID   int64
	CooldownSeconds int64
}
