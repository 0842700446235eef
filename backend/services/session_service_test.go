package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gunceblog/gunce-backend/backend/config"
	"github.com/gunceblog/gunce-backend/backend/models"
	"github.com/gunceblog/gunce-backend/gunce"
)

func newTestService(secret string) *SessionService {
	cfg := &gunce.Config{}
	cfg.Web.SessionSecret = secret
	return NewSessionService(config.NewWebAppConfig(cfg, true))
}

func TestSignSession_RoundTrip(t *testing.T) {
	svc := newTestService("test-secret")

	session := &models.UserSession{
		UserID:    "u-1",
		Username:  "deniz",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	token, err := svc.SignSession(session)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	data, err := svc.verifyAndDecodeData(token)
	if err != nil {
		t.Fatalf("verifyAndDecodeData: %v", err)
	}

	var decoded models.UserSession
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.UserID != "u-1" || decoded.Username != "deniz" {
		t.Errorf("decoded session = %+v, want original fields back", decoded)
	}
}

func TestVerify_RejectsTampering(t *testing.T) {
	svc := newTestService("test-secret")

	token, err := svc.SignSession(&models.UserSession{UserID: "u-1"})
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	tampered := "A" + token[1:]
	if _, err := svc.verifyAndDecodeData(tampered); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	token, err := newTestService("secret-a").SignSession(&models.UserSession{UserID: "u-1"})
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	if _, err := newTestService("secret-b").verifyAndDecodeData(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestSign_RequiresSecret(t *testing.T) {
	svc := newTestService("")
	if _, err := svc.SignSession(&models.UserSession{UserID: "u-1"}); err == nil {
		t.Error("signing without a configured secret succeeded")
	}
}
