package store

import (
	"context"
	"testing"

	"github.com/amaralimoveis/vitrine/internal/db"
)

func TestGetOrCreateSecretPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetOrCreateSecret(ctx, database, SettingJWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetOrCreateSecret(ctx, database, SettingJWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}

	value, ok, err := GetSetting(ctx, database, SettingJWTSecret)
	if err != nil || !ok || value != secret1 {
		t.Errorf("GetSetting = %q, %v, %v", value, ok, err)
	}

	if _, ok, _ := GetSetting(ctx, database, "missing"); ok {
		t.Error("expected missing setting")
	}
}
