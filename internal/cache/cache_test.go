package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type entry struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New("redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestSetAndGetJSON(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.SetJSON(ctx, "cep:17250000", entry{City: "Bariri", Region: "SP"}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if !mr.Exists("vitrine:cep:17250000") {
		t.Error("expected prefixed key in redis")
	}
	if ttl := mr.TTL("vitrine:cep:17250000"); ttl != time.Hour {
		t.Errorf("expected ttl 1h, got %v", ttl)
	}

	var got entry
	if !c.GetJSON(ctx, "cep:17250000", &got) {
		t.Fatal("expected cache hit")
	}
	if got.City != "Bariri" || got.Region != "SP" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestGetJSONMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got entry
	if c.GetJSON(ctx, "cep:00000000", &got) {
		t.Error("expected miss for unknown key")
	}

	mr.Set("vitrine:cep:broken", "not json")
	if c.GetJSON(ctx, "cep:broken", &got) {
		t.Error("expected miss for undecodable value")
	}
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "k", entry{City: "X"})
	mr.FastForward(2 * time.Hour)

	var got entry
	if c.GetJSON(ctx, "k", &got) {
		t.Error("expected entry to expire")
	}
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "k", entry{City: "X"})
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	var got entry
	if c.GetJSON(ctx, "k", &got) {
		t.Error("expected miss after delete")
	}
}

func TestNewInvalidURL(t *testing.T) {
	if _, err := New("not-a-url", time.Minute); err == nil {
		t.Error("expected error for invalid URL")
	}
}
