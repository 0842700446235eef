package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	economyutils "github.com/gunceblog/gunce-backend/gunce/economy/utils"
	"github.com/sahilm/fuzzy"
)

var (
	// ValidUserIDRegex validates auth-provider user IDs
	ValidUserIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_]{1,64}$`)

	// MaxUsernameLength caps profile display names
	MaxUsernameLength = 100
)

// ValidateUserID checks the path parameter before it reaches the economy
// layer. IDs come from the auth provider and are opaque tokens, never
// free text.
func ValidateUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if !ValidUserIDRegex.MatchString(userID) {
		return fmt.Errorf("user id contains invalid characters")
	}
	return nil
}

// ValidateUsername checks display names on profile creation.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be less than %d characters", MaxUsernameLength)
	}
	return nil
}

// ValidateBadgeID checks the badge against the catalog. For typos it
// fuzzy-matches the known IDs and suggests the closest one, which makes
// integration mistakes on the platform side easy to spot in responses.
func ValidateBadgeID(badgeID string) (suggestion string, err error) {
	badgeID = strings.TrimSpace(badgeID)
	if badgeID == "" {
		return "", fmt.Errorf("badge_id is required")
	}

	if _, ok := badges.Lookup(badgeID); ok {
		return "", nil
	}

	matches := fuzzy.Find(badgeID, badges.KnownIDs())
	if len(matches) > 0 {
		return matches[0].Str, fmt.Errorf("unknown badge %q", badgeID)
	}
	return "", fmt.Errorf("unknown badge %q", badgeID)
}

// ValidateDeclaredCost compares the client-declared crate cost with the
// server price. A zero declared cost means the client did not send one,
// which is accepted; any other mismatch is rejected.
func ValidateDeclaredCost(declared int64) error {
	if declared == 0 {
		return nil
	}
	if declared != int64(economyutils.CrateCost) {
		return fmt.Errorf("declared cost %d does not match the crate price %d",
			declared, int64(economyutils.CrateCost))
	}
	return nil
}
