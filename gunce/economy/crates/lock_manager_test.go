package crates

import (
	"testing"
	"time"
)

func TestRegisterKey(t *testing.T) {
	m := NewLockManager(time.Second)

	if !m.RegisterKey("") {
		t.Error("empty key must always register")
	}
	if !m.RegisterKey("") {
		t.Error("empty key must never be deduplicated")
	}

	if !m.RegisterKey("req-1") {
		t.Fatal("first registration of a key should succeed")
	}
	if m.RegisterKey("req-1") {
		t.Error("second registration of the same key should be rejected")
	}
}

func TestReleaseKey_AllowsRetry(t *testing.T) {
	m := NewLockManager(time.Second)

	if !m.RegisterKey("req-1") {
		t.Fatal("first registration of a key should succeed")
	}

	// A failed open releases its key; the client's retry with the same key
	// must go through instead of being treated as a duplicate.
	m.ReleaseKey("req-1")

	if !m.RegisterKey("req-1") {
		t.Error("key should be reusable after release")
	}
}

func TestLockOpen(t *testing.T) {
	m := NewLockManager(time.Second)

	if !m.LockOpen("u-1") {
		t.Fatal("first lock should succeed")
	}
	if m.LockOpen("u-1") {
		t.Error("second lock for the same user should fail while held")
	}
	if !m.LockOpen("u-2") {
		t.Error("lock for a different user should be independent")
	}

	m.ReleaseOpen("u-1")
	if !m.LockOpen("u-1") {
		t.Error("lock should succeed again after release")
	}
}

func TestCooldown(t *testing.T) {
	m := NewLockManager(time.Hour)

	if ok, _ := m.CanOpen("u-1"); !ok {
		t.Fatal("user with no cooldown should be allowed to open")
	}

	m.SetCooldown("u-1")

	ok, remaining := m.CanOpen("u-1")
	if ok {
		t.Error("open during cooldown should be blocked")
	}
	if remaining <= 0 {
		t.Errorf("remaining = %v, want positive during cooldown", remaining)
	}
}
