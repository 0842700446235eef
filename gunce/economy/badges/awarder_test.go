package badges

import (
	"testing"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
)

func TestLookup(t *testing.T) {
	if _, ok := Lookup("ilk-yazi"); !ok {
		t.Error("Lookup(ilk-yazi) should find the catalog badge")
	}
	if _, ok := Lookup("no-such-badge"); ok {
		t.Error("Lookup(no-such-badge) should report unknown")
	}
	if _, ok := Lookup(""); ok {
		t.Error("Lookup of empty id should report unknown")
	}
}

func TestApplyAward(t *testing.T) {
	calc := leveling.NewCalculator(nil)
	badge, _ := Lookup("ilk-yazi")

	profile := &models.Profile{
		UserID:     "u-1",
		Experience: 0,
		Level:      1,
		Gems:       0,
	}

	if !applyAward(profile, badge, calc) {
		t.Fatal("first award should apply")
	}

	if profile.Experience != utils.BadgeExpReward {
		t.Errorf("experience = %d, want %d", profile.Experience, utils.BadgeExpReward)
	}
	if profile.Gems != utils.BadgeGemReward {
		t.Errorf("gems = %d, want %d", profile.Gems, utils.BadgeGemReward)
	}
	// 50 exp consumes the 25 needed for level 2; 25 into level 2 is below
	// the 50 needed for level 3.
	if profile.Level != 2 {
		t.Errorf("level = %d, want 2", profile.Level)
	}
	if !profile.HasBadge("ilk-yazi") {
		t.Error("badge not recorded on profile")
	}
}

func TestApplyAward_Idempotent(t *testing.T) {
	calc := leveling.NewCalculator(nil)
	badge, _ := Lookup("ilk-yorum")

	profile := &models.Profile{UserID: "u-1", Level: 1}

	if !applyAward(profile, badge, calc) {
		t.Fatal("first award should apply")
	}

	expAfterFirst := profile.Experience
	gemsAfterFirst := profile.Gems
	badgesAfterFirst := len(profile.Badges)

	if applyAward(profile, badge, calc) {
		t.Fatal("second award of the same badge should be a no-op")
	}

	if profile.Experience != expAfterFirst || profile.Gems != gemsAfterFirst {
		t.Errorf("no-op award changed rewards: exp %d->%d gems %d->%d",
			expAfterFirst, profile.Experience, gemsAfterFirst, profile.Gems)
	}
	if len(profile.Badges) != badgesAfterFirst {
		t.Errorf("no-op award changed badge set size: %d -> %d", badgesAfterFirst, len(profile.Badges))
	}
}

func TestApplyAward_LevelConsistency(t *testing.T) {
	calc := leveling.NewCalculator(nil)
	profile := &models.Profile{UserID: "u-1", Level: 1}

	for _, b := range Catalog {
		applyAward(profile, b, calc)
		if want := calc.LevelOf(profile.Experience).Level; profile.Level != want {
			t.Fatalf("after %s: level %d inconsistent with experience %d (want %d)",
				b.ID, profile.Level, profile.Experience, want)
		}
	}
}
