// converters.go
package migration

import (
	"strings"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	"github.com/gunceblog/gunce-backend/gunce/economy/crates"
)

// convertProfile maps one legacy document onto a profiles row. Unknown
// badge and frame names are dropped rather than imported; the old
// platform accumulated test data the catalogs never knew about.
func (m *Migrator) convertProfile(lp LegacyProfile) *models.Profile {
	now := time.Now()

	exp := int64(lp.Exp)
	if exp < 0 {
		exp = 0
	}
	gems := int64(lp.Gems)
	if gems < 0 {
		gems = 0
	}

	profile := &models.Profile{
		UserID:      strings.TrimSpace(lp.UserID),
		Username:    cleanseString(lp.Username),
		Experience:  exp,
		Level:       m.calculator.LevelOf(exp).Level,
		Gems:        gems,
		Badges:      filterKnownBadges(lp.Achievements),
		OwnedFrames: filterKnownFrames(lp.Frames),
		CreatedAt:   lp.Joined,
		UpdatedAt:   now,
	}

	if !lp.LastDaily.IsZero() {
		profile.LastDailyReward = lp.LastDaily.UTC()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	// The selected frame must also be owned; legacy data sometimes points
	// at frames the user sold back in an old promotion.
	selected := lp.Prefs.Profile.Frame
	if selected != "" && profile.OwnsFrame(selected) {
		profile.SelectedFrame = selected
	}

	return profile
}

func filterKnownBadges(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		if _, ok := badges.Lookup(id); ok {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

func filterKnownFrames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		if _, ok := crates.LookupFrame(name); ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	return out
}

// cleanseString strips control characters and surrounding whitespace from
// legacy text fields.
func cleanseString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
