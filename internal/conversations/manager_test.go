package conversations

import "testing"

func TestResolveConsumesState(t *testing.T) {
	m := NewManager()
	m.Await(1, State{Kind: KindSubmission, ActorID: 42})

	state, ok := m.Resolve(1)
	if !ok {
		t.Fatalf("expected pending state")
	}
	if state.Kind != KindSubmission || state.ActorID != 42 {
		t.Fatalf("unexpected state: %+v", state)
	}

	if _, ok := m.Resolve(1); ok {
		t.Fatalf("state must be consumed on first resolve")
	}
}

func TestAwaitOverwritesPreviousState(t *testing.T) {
	m := NewManager()
	m.Await(1, State{Kind: KindSubmission, ActorID: 42})
	m.Await(1, State{Kind: KindRejectReason, ActorID: 100, SubmissionID: 7})

	state, ok := m.Resolve(1)
	if !ok {
		t.Fatalf("expected pending state")
	}
	if state.Kind != KindRejectReason || state.SubmissionID != 7 {
		t.Fatalf("expected latest state to win, got %+v", state)
	}
}

func TestStatesAreIsolatedPerChat(t *testing.T) {
	m := NewManager()
	m.Await(1, State{Kind: KindSubmission})
	m.Await(2, State{Kind: KindCooldown})

	if state, ok := m.Resolve(2); !ok || state.Kind != KindCooldown {
		t.Fatalf("unexpected state for chat 2: %+v", state)
	}
	if state, ok := m.Resolve(1); !ok || state.Kind != KindSubmission {
		t.Fatalf("unexpected state for chat 1: %+v", state)
	}
}

func TestCancelDropsState(t *testing.T) {
	m := NewManager()
	m.Await(1, State{Kind: KindBroadcastBody})
	m.Cancel(1)

	if _, ok := m.Resolve(1); ok {
		t.Fatalf("cancelled state must not resolve")
	}
}
