package conversations

import "sync"

// Kind tags the flow a chat is currently inside. Each flow captures its
// arguments in the State fields instead of a closure, which keeps the
// single-slot overwrite behavior visible and testable.
type Kind string

const (
	KindSubmission    Kind = "SUBMISSION"
	KindModeratorID   Kind = "MODERATOR_ID"
	KindAdminID       Kind = "ADMIN_ID"
	KindChannelID     Kind = "CHANNEL_ID"
	KindCooldown      Kind = "COOLDOWN"
	KindRejectReason  Kind = "REJECT_REASON"
	KindAcceptComment Kind = "ACCEPT_COMMENT"
	KindBroadcastBody Kind = "BROADCAST_BODY"
	KindPublishBody   Kind = "PUBLISH_BODY"
)

type State struct {
	Kind         Kind
	ActorID      int64
	SubmissionID int64
	TargetUserID int64
}

// Manager is a single-slot mailbox per chat: registering a new state before
// the previous one is consumed overwrites it, and Resolve is read-once.
// Chats are single-threaded conversations, so a mutex around the map is all
// the coordination required; cross-chat slots never interact.
type Manager struct {
	mu     sync.Mutex
	byChat map[int64]State
}

func NewManager() *Manager {
	return &Manager{byChat: make(map[int64]State)}
}

func (m *Manager) Await(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byChat[chatID] = state
}

// Resolve consumes the pending state for the chat, if any. A message that
// arrives with no pending state falls through to normal command dispatch.
func (m *Manager) Resolve(chatID int64) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.byChat[chatID]
	if ok {
		delete(m.byChat, chatID)
	}
	return state, ok
}

func (m *Manager) Cancel(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byChat, chatID)
}
