package migration

import (
	"testing"
	"time"
)

func TestConvertProfile(t *testing.T) {
	m := NewMigrator(nil, "")

	lp := LegacyProfile{
		UserID:       "  u-42  ",
		Username:     "ayse\x00",
		Exp:          130.7,
		Gems:         12.0,
		Achievements: []string{"ilk-yazi", "ilk-yazi", "ghost-badge", "ilk-yorum"},
		Frames:       []string{"bogazici", "deleted-frame", "sade-beyaz"},
		LastDaily:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Joined:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	lp.Prefs.Profile.Frame = "bogazici"

	p := m.convertProfile(lp)

	if p.UserID != "u-42" {
		t.Errorf("UserID = %q, want trimmed u-42", p.UserID)
	}
	if p.Username != "ayse" {
		t.Errorf("Username = %q, want control chars stripped", p.Username)
	}
	if p.Experience != 130 {
		t.Errorf("Experience = %d, want 130", p.Experience)
	}
	// 25+50+75 = 150 > 130, 25+50 = 75 consumed at level 3
	if p.Level != 3 {
		t.Errorf("Level = %d, want 3 for 130 exp", p.Level)
	}
	if got := p.Badges; len(got) != 2 || got[0] != "ilk-yazi" || got[1] != "ilk-yorum" {
		t.Errorf("Badges = %v, want known badges deduplicated in order", got)
	}
	if got := p.OwnedFrames; len(got) != 2 || got[0] != "bogazici" || got[1] != "sade-beyaz" {
		t.Errorf("OwnedFrames = %v, want known frames only", got)
	}
	if p.SelectedFrame != "bogazici" {
		t.Errorf("SelectedFrame = %q, want owned legacy selection kept", p.SelectedFrame)
	}
	if p.LastDailyReward.IsZero() {
		t.Error("LastDailyReward lost in conversion")
	}
}

func TestConvertProfile_DropsUnownedSelection(t *testing.T) {
	m := NewMigrator(nil, "")

	lp := LegacyProfile{UserID: "u-1", Username: "can"}
	lp.Prefs.Profile.Frame = "ayyildiz"

	if p := m.convertProfile(lp); p.SelectedFrame != "" {
		t.Errorf("SelectedFrame = %q, want empty when the frame is not owned", p.SelectedFrame)
	}
}

func TestConvertProfile_NegativeNumbersClampToZero(t *testing.T) {
	m := NewMigrator(nil, "")

	p := m.convertProfile(LegacyProfile{UserID: "u-1", Exp: -50, Gems: -3})

	if p.Experience != 0 || p.Gems != 0 {
		t.Errorf("Experience/Gems = %d/%d, want 0/0", p.Experience, p.Gems)
	}
	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
}
