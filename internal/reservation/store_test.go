package reservation

import (
	"testing"
	"time"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)

	if session := store.Get("unknown"); session != nil {
		t.Error("expected nil for unknown session")
	}

	created := store.Create()
	if created.ID == "" {
		t.Fatal("expected a session id")
	}
	if created.Flow.Step() != StepSelectService {
		t.Errorf("expected initial step, got %s", created.Flow.Step())
	}

	retrieved := store.Get(created.ID)
	if retrieved != created {
		t.Error("expected the same session object")
	}

	other := store.Create()
	if other.ID == created.ID {
		t.Error("session ids must be unique")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}

	store.Delete(created.ID)
	if store.Get(created.ID) != nil {
		t.Error("session should be deleted")
	}
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	session := store.Create()
	time.Sleep(25 * time.Millisecond)

	if got := store.Get(session.ID); got != nil {
		t.Error("expired session must not be returned")
	}
	if store.Len() != 0 {
		t.Errorf("expired session must be dropped on access, %d left", store.Len())
	}
}

func TestSessionTouchKeepsAlive(t *testing.T) {
	store := NewSessionStore(50 * time.Millisecond)
	session := store.Create()

	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		if store.Get(session.ID) == nil {
			t.Fatal("touched session must stay alive")
		}
	}
}

func TestCleanup(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	store.Create()
	store.Create()
	time.Sleep(25 * time.Millisecond)
	fresh := store.Create()

	removed := store.Cleanup()
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if store.Get(fresh.ID) == nil {
		t.Error("fresh session must survive cleanup")
	}
}

func TestStoreDefaultTimeout(t *testing.T) {
	store := NewSessionStore(0)
	if store.timeout != 30*time.Minute {
		t.Errorf("expected 30m default timeout, got %s", store.timeout)
	}
}
