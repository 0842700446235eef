package utils

import (
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid alphanumeric", "u-12345", false},
		{"valid with underscore", "user_abc", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"path traversal", "../etc/passwd", true},
		{"spaces inside", "u 123", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserID(tt.userID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserID(%q) error = %v, wantErr %v", tt.userID, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBadgeID(t *testing.T) {
	if _, err := ValidateBadgeID("ilk-yazi"); err != nil {
		t.Errorf("known badge rejected: %v", err)
	}

	suggestion, err := ValidateBadgeID("ilk-yazzi")
	if err == nil {
		t.Fatal("typo accepted as a known badge")
	}
	if suggestion != "ilk-yazi" {
		t.Errorf("suggestion = %q, want ilk-yazi", suggestion)
	}

	if _, err := ValidateBadgeID(""); err == nil {
		t.Error("empty badge id accepted")
	}
}

func TestValidateDeclaredCost(t *testing.T) {
	if err := ValidateDeclaredCost(0); err != nil {
		t.Errorf("omitted cost rejected: %v", err)
	}
	if err := ValidateDeclaredCost(10); err != nil {
		t.Errorf("matching cost rejected: %v", err)
	}
	if err := ValidateDeclaredCost(1); err == nil {
		t.Error("stale client cost accepted")
	}
}
