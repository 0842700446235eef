package leveling

import (
	"testing"

	"github.com/gunceblog/gunce-backend/gunce/economy/utils"
)

func TestNewDefaultConfig(t *testing.T) {
	// The default curve step and the economy constant are one value; the
	// catalog rewards are balanced against it.
	if got := NewDefaultConfig().ExpPerLevelStep; got != utils.ExpPerLevelStep {
		t.Errorf("ExpPerLevelStep = %d, want %d", got, int64(utils.ExpPerLevelStep))
	}
}

func TestCalculator_LevelOf(t *testing.T) {
	tests := []struct {
		name            string
		experience      int64
		wantLevel       int
		wantIntoLevel   int64
		wantNextLevelAt int64
	}{
		{
			name:            "zero experience",
			experience:      0,
			wantLevel:       1,
			wantIntoLevel:   0,
			wantNextLevelAt: 25,
		},
		{
			name:            "just below first threshold",
			experience:      24,
			wantLevel:       1,
			wantIntoLevel:   24,
			wantNextLevelAt: 25,
		},
		{
			name:            "exactly first threshold",
			experience:      25,
			wantLevel:       2,
			wantIntoLevel:   0,
			wantNextLevelAt: 50,
		},
		{
			name:            "single badge reward",
			experience:      50,
			wantLevel:       2,
			wantIntoLevel:   25,
			wantNextLevelAt: 50,
		},
		{
			name:            "level three boundary",
			experience:      75,
			wantLevel:       3,
			wantIntoLevel:   0,
			wantNextLevelAt: 75,
		},
		{
			name:            "deep into the curve",
			experience:      1000,
			wantLevel:       9,
			wantIntoLevel:   100,
			wantNextLevelAt: 225,
		},
		{
			name:            "negative clamps to zero",
			experience:      -10,
			wantLevel:       1,
			wantIntoLevel:   0,
			wantNextLevelAt: 25,
		},
	}

	c := NewCalculator(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.LevelOf(tt.experience)
			if got.Level != tt.wantLevel {
				t.Errorf("LevelOf(%d).Level = %d, want %d", tt.experience, got.Level, tt.wantLevel)
			}
			if got.IntoLevel != tt.wantIntoLevel {
				t.Errorf("LevelOf(%d).IntoLevel = %d, want %d", tt.experience, got.IntoLevel, tt.wantIntoLevel)
			}
			if got.NextLevelAt != tt.wantNextLevelAt {
				t.Errorf("LevelOf(%d).NextLevelAt = %d, want %d", tt.experience, got.NextLevelAt, tt.wantNextLevelAt)
			}
		})
	}
}

func TestCalculator_LevelOf_Monotonic(t *testing.T) {
	c := NewCalculator(nil)

	prev := 0
	for exp := int64(0); exp <= 10000; exp++ {
		level := c.LevelOf(exp).Level
		if level < prev {
			t.Fatalf("level decreased from %d to %d at experience %d", prev, level, exp)
		}
		prev = level
	}
}

func TestCalculator_LevelOf_RoundTrip(t *testing.T) {
	c := NewCalculator(nil)

	for exp := int64(0); exp <= 5000; exp += 7 {
		p := c.LevelOf(exp)

		// Reconstruct total experience from the progress breakdown
		var consumed int64
		for l := 1; l < p.Level; l++ {
			consumed += c.ExpRequired(l)
		}
		if consumed+p.IntoLevel != exp {
			t.Fatalf("round trip failed for %d: consumed %d + into %d = %d",
				exp, consumed, p.IntoLevel, consumed+p.IntoLevel)
		}
		if p.IntoLevel >= p.NextLevelAt {
			t.Fatalf("into-level %d not below threshold %d at experience %d",
				p.IntoLevel, p.NextLevelAt, exp)
		}
	}
}

func TestCalculator_ExpRequired(t *testing.T) {
	c := NewCalculator(nil)

	if got := c.ExpRequired(1); got != 25 {
		t.Errorf("ExpRequired(1) = %d, want 25", got)
	}
	if got := c.ExpRequired(4); got != 100 {
		t.Errorf("ExpRequired(4) = %d, want 100", got)
	}
	if got := c.ExpRequired(0); got != 25 {
		t.Errorf("ExpRequired(0) = %d, want 25 (clamped)", got)
	}
}
