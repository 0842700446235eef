package crates

import (
	"math/rand"
	"testing"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
)

func TestCatalogWeightsSumToHundred(t *testing.T) {
	sum := 0
	for _, tier := range Tiers {
		if tier.DropWeight <= 0 {
			t.Errorf("tier %s has non-positive weight %d", tier.Name, tier.DropWeight)
		}
		sum += tier.DropWeight
	}
	if sum != 100 {
		t.Errorf("tier weights sum to %d, want 100", sum)
	}
}

func TestCatalogFrameNamesUnique(t *testing.T) {
	seen := make(map[string]bool, len(Frames))
	for _, f := range Frames {
		if seen[f.Name] {
			t.Errorf("duplicate frame name %q", f.Name)
		}
		seen[f.Name] = true

		if _, ok := tiersByName[f.Tier]; !ok {
			t.Errorf("frame %q references unknown tier %q", f.Name, f.Tier)
		}
	}
}

func TestCatalogRefundsBelowCost(t *testing.T) {
	for _, tier := range Tiers {
		if tier.DuplicateRefund >= utils.CrateCost {
			t.Errorf("tier %s refund %d not below crate cost %d",
				tier.Name, tier.DuplicateRefund, int64(utils.CrateCost))
		}
	}
}

func TestTierForRoll(t *testing.T) {
	tests := []struct {
		roll int
		want string
	}{
		{0, "common"},
		{59, "common"},
		{60, "rare"},
		{84, "rare"},
		{85, "epic"},
		{94, "epic"},
		{95, "legendary"},
		{99, "legendary"},
	}

	for _, tt := range tests {
		if got := tierForRoll(tt.roll); got.Name != tt.want {
			t.Errorf("tierForRoll(%d) = %s, want %s", tt.roll, got.Name, tt.want)
		}
	}
}

func TestDraw_TierDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const samples = 100000
	counts := make(map[string]int)
	for i := 0; i < samples; i++ {
		frame, tier := draw(rng)
		counts[tier.Name]++

		if frame.Tier != tier.Name {
			t.Fatalf("drawn frame %q does not belong to drawn tier %q", frame.Name, tier.Name)
		}
	}

	// Each observed share should sit near the declared weight; 2 percentage
	// points of slack is generous at this sample size.
	for _, tier := range Tiers {
		got := float64(counts[tier.Name]) / samples * 100
		want := float64(tier.DropWeight)
		if got < want-2 || got > want+2 {
			t.Errorf("tier %s drawn %.2f%%, want about %d%%", tier.Name, got, tier.DropWeight)
		}
	}
}

func TestCanAfford(t *testing.T) {
	tests := []struct {
		name string
		gems int64
		cost int64
		want bool
	}{
		{"below cost", 5, 10, false},
		{"exactly cost", 10, 10, true},
		{"above cost", 11, 10, true},
		{"zero balance", 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &models.Profile{UserID: "u-1", Gems: tt.gems}
			if got := canAfford(profile, tt.cost); got != tt.want {
				t.Errorf("canAfford(gems=%d, cost=%d) = %v, want %v", tt.gems, tt.cost, got, tt.want)
			}
		})
	}
}

func TestInsufficientFunds_NoMutation(t *testing.T) {
	profile := &models.Profile{
		UserID:      "u-1",
		Gems:        5,
		OwnedFrames: []string{"sade-beyaz"},
	}
	cost := int64(utils.CrateCost)

	// The balance gate fires before the draw, the debit and the owned-set
	// growth; a rejected open must leave the profile exactly as it was.
	if canAfford(profile, cost) {
		t.Fatalf("5 gems should not afford a %d gem crate", cost)
	}

	if profile.Gems != 5 {
		t.Errorf("gems = %d, want 5 untouched after rejection", profile.Gems)
	}
	if len(profile.OwnedFrames) != 1 || profile.OwnedFrames[0] != "sade-beyaz" {
		t.Errorf("owned frames = %v, want unchanged after rejection", profile.OwnedFrames)
	}
}

func TestApplyDraw_NewFrame(t *testing.T) {
	profile := &models.Profile{UserID: "u-1", Gems: 10}
	frame, _ := LookupFrame("bogazici")
	tier := TierOf(frame)

	wasOwned, refund := applyDraw(profile, frame, tier, 10)

	if wasOwned {
		t.Error("fresh frame reported as owned")
	}
	if refund != 0 {
		t.Errorf("refund = %d, want 0 for a fresh frame", refund)
	}
	if profile.Gems != 0 {
		t.Errorf("gems = %d, want 0 after paying full cost", profile.Gems)
	}
	if !profile.OwnsFrame("bogazici") {
		t.Error("frame not added to owned set")
	}
}

func TestApplyDraw_DuplicateRefund(t *testing.T) {
	profile := &models.Profile{
		UserID:      "u-1",
		Gems:        10,
		OwnedFrames: []string{"gunbatimi"},
	}
	frame, _ := LookupFrame("gunbatimi")
	tier := TierOf(frame)

	wasOwned, refund := applyDraw(profile, frame, tier, 10)

	if !wasOwned {
		t.Error("duplicate draw not reported as owned")
	}
	if refund != tier.DuplicateRefund {
		t.Errorf("refund = %d, want %d", refund, tier.DuplicateRefund)
	}
	// Ledger conservation: newGems = oldGems - cost + refund
	if want := int64(10) - 10 + tier.DuplicateRefund; profile.Gems != want {
		t.Errorf("gems = %d, want %d", profile.Gems, want)
	}
	if len(profile.OwnedFrames) != 1 {
		t.Errorf("owned set changed on duplicate: %v", profile.OwnedFrames)
	}
}

func TestApplyDraw_OwnedSetOnlyGrows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	profile := &models.Profile{UserID: "u-1", Gems: 1 << 30}

	prevSize := 0
	for i := 0; i < 500; i++ {
		frame, tier := draw(rng)
		applyDraw(profile, frame, tier, int64(utils.CrateCost))

		if len(profile.OwnedFrames) < prevSize {
			t.Fatalf("owned set shrank from %d to %d", prevSize, len(profile.OwnedFrames))
		}
		prevSize = len(profile.OwnedFrames)
	}

	// With 500 draws every frame should have appeared at least once.
	if len(profile.OwnedFrames) != len(Frames) {
		t.Errorf("owned %d frames after 500 draws, want the full catalog of %d",
			len(profile.OwnedFrames), len(Frames))
	}
}

func TestDraw_EmptyTierFallsBack(t *testing.T) {
	// Temporarily empty the legendary pool; draw must fall back to the most
	// common tier instead of failing.
	saved := framesByTier["legendary"]
	framesByTier["legendary"] = nil
	defer func() { framesByTier["legendary"] = saved }()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		frame, tier := draw(rng)
		if tier.Name == "legendary" {
			t.Fatal("draw returned the emptied tier")
		}
		if _, ok := LookupFrame(frame.Name); !ok {
			t.Fatalf("draw returned unknown frame %q", frame.Name)
		}
	}
}
