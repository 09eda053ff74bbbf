package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "secret",
		Issuer:     "artesanos",
		TTLMinutes: 30,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()
	userID := uuid.New()
	profileID := uuid.New()

	token, err := MintSessionToken(cfg, now, SessionPayload{
		UserID:    userID,
		ProfileID: profileID,
		Username:  "rosa",
		Role:      enums.RoleArtisan,
		SessionID: "session-1",
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}

	if claims.UserID != userID || claims.ProfileID != profileID {
		t.Fatalf("ids not preserved: %+v", claims)
	}
	if claims.Role != enums.RoleArtisan || claims.Username != "rosa" {
		t.Fatalf("unexpected role/username %s/%s", claims.Role, claims.Username)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1, got %s", claims.ID)
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.Time)
	}
}

func TestMintSessionTokenGeneratesJTI(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), SessionPayload{UserID: uuid.New(), Role: enums.RoleBuyer})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("expected generated uuid jti, got %q", claims.ID)
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), SessionPayload{UserID: uuid.New(), Role: enums.RoleBuyer})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionPayload{UserID: uuid.New(), Role: enums.RoleBuyer})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	_, err = ParseSessionToken(cfg, token)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiration error, got %v", err)
	}
}

func TestMintSessionTokenInvalidRole(t *testing.T) {
	if _, err := MintSessionToken(testSessionConfig(), time.Now(), SessionPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
