package crates

import (
	"context"
	"sync"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
)

// LockManager serializes crate opens per user in-process. It exists to stop
// double clicks and duplicate network retries from issuing two opens for one
// user action; the database transaction remains the correctness boundary.
type LockManager struct {
	activeOpens   sync.Map // userID -> lock expiry time.Time
	openCooldowns sync.Map // userID -> next allowed open time.Time
	usedKeys      sync.Map // idempotency key -> time.Time first seen
	lockDuration  time.Duration
	cooldown      time.Duration
	keyWindow     time.Duration
}

func NewLockManager(cooldown time.Duration) *LockManager {
	return &LockManager{
		lockDuration: utils.OpenLockDuration,
		cooldown:     cooldown,
		keyWindow:    5 * time.Minute,
	}
}

// CanOpen reports whether the per-user cooldown has elapsed.
func (m *LockManager) CanOpen(userID string) (bool, time.Duration) {
	if cooldown, exists := m.openCooldowns.Load(userID); exists {
		nextOpen := cooldown.(time.Time)
		if time.Now().Before(nextOpen) {
			return false, time.Until(nextOpen)
		}
	}
	return true, 0
}

// LockOpen claims the per-user in-flight slot. Returns false when another
// open for the same user has not released yet.
func (m *LockManager) LockOpen(userID string) bool {
	expiry := time.Now().Add(m.lockDuration)
	if _, loaded := m.activeOpens.LoadOrStore(userID, expiry); loaded {
		return false
	}
	return true
}

func (m *LockManager) ReleaseOpen(userID string) {
	m.activeOpens.Delete(userID)
}

func (m *LockManager) SetCooldown(userID string) {
	m.openCooldowns.Store(userID, time.Now().Add(m.cooldown))
}

// RegisterKey records an idempotency key; returns false when the key was
// already seen inside the dedup window.
func (m *LockManager) RegisterKey(key string) bool {
	if key == "" {
		return true
	}
	if _, loaded := m.usedKeys.LoadOrStore(key, time.Now()); loaded {
		return false
	}
	return true
}

// ReleaseKey forgets an idempotency key. Called when the open it was
// registered for did not commit, so a retry can reuse the key.
func (m *LockManager) ReleaseKey(key string) {
	if key != "" {
		m.usedKeys.Delete(key)
	}
}

func (m *LockManager) cleanupExpired() {
	now := time.Now()

	m.activeOpens.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.activeOpens.Delete(key)
		}
		return true
	})

	m.openCooldowns.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.openCooldowns.Delete(key)
		}
		return true
	})

	m.usedKeys.Range(func(key, value interface{}) bool {
		if now.Sub(value.(time.Time)) > m.keyWindow {
			m.usedKeys.Delete(key)
		}
		return true
	})
}

func (m *LockManager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(utils.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.cleanupExpired()
			}
		}
	}()
}
