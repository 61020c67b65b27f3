package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/amaralimoveis/vitrine/internal/model"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedOptions(id string) Options {
	return Options{
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return id },
	}
}

func TestNormalizeCreate(t *testing.T) {
	l := Normalize(FormState{
		Title:      "  Casa Teste ",
		TotalPrice: "150.000,00",
		TotalArea:  "120",
		Category:   "casa",
	}, fixedOptions("imv_new"))

	if l.ID != "imv_new" {
		t.Errorf("expected generated id, got %q", l.ID)
	}
	if l.Title != "Casa Teste" {
		t.Errorf("expected trimmed title, got %q", l.Title)
	}
	if l.TotalPrice != 150000 {
		t.Errorf("expected price 150000, got %v", l.TotalPrice)
	}
	if l.TotalArea != 120 {
		t.Errorf("expected area 120, got %v", l.TotalArea)
	}
	if l.Category != model.CategoryHouse {
		t.Errorf("expected category casa, got %q", l.Category)
	}
	if l.Status != model.StatusAvailable {
		t.Errorf("expected default status, got %q", l.Status)
	}
	if len(l.Photos) != 1 || l.Photos[0] != Placeholder {
		t.Errorf("expected placeholder photo, got %v", l.Photos)
	}
	if !l.CreatedAt.Equal(fixedNow) || !l.UpdatedAt.Equal(fixedNow) {
		t.Errorf("expected timestamps %v, got %v / %v", fixedNow, l.CreatedAt, l.UpdatedAt)
	}
}

func TestNormalizePreservesIdentity(t *testing.T) {
	created := fixedNow.Add(-48 * time.Hour)
	st := FormState{ID: "imv_keep", CreatedAt: created, Title: "Apartamento"}

	for range 3 {
		l := Normalize(st, fixedOptions("imv_other"))
		if l.ID != "imv_keep" {
			t.Fatalf("id regenerated: %q", l.ID)
		}
		if !l.CreatedAt.Equal(created) {
			t.Fatalf("created_at changed: %v", l.CreatedAt)
		}
		if !l.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("updated_at not refreshed: %v", l.UpdatedAt)
		}
		st = FormStateOf(&l)
	}
}

func TestNormalizeFields(t *testing.T) {
	l := Normalize(FormState{
		Title:        "Sítio",
		Category:     " sitio ",
		Status:       "negociacao",
		PostalCode:   "17250000",
		Street:       " Rua XV ",
		Region:       " sp ",
		TotalPrice:   "-10",
		BuiltArea:    "abc",
		Bedrooms:     "3",
		Bathrooms:    "dois",
		Pool:         "1",
		Photos:       []string{"", "  ", " https://img/a.jpg ", "https://img/b.jpg"},
		Description:  "\n Ótima localização \n",
		Neighborhood: "Centro",
	}, fixedOptions("imv_x"))

	if l.Category != model.CategoryFarmSmall {
		t.Errorf("category = %q", l.Category)
	}
	if l.Status != model.StatusNegotiating {
		t.Errorf("status = %q", l.Status)
	}
	if l.Location.PostalCode != "17250-000" {
		t.Errorf("postal code = %q", l.Location.PostalCode)
	}
	if l.Location.Street != "Rua XV" {
		t.Errorf("street = %q", l.Location.Street)
	}
	if l.Location.Region != "SP" {
		t.Errorf("region = %q", l.Location.Region)
	}
	if l.TotalPrice != 0 || l.BuiltArea != 0 {
		t.Errorf("expected malformed quantities to become 0, got %v / %v", l.TotalPrice, l.BuiltArea)
	}
	if l.Features.Bedrooms != 3 || l.Features.Bathrooms != 0 || l.Features.Pool != 1 {
		t.Errorf("features = %+v", l.Features)
	}
	if len(l.Photos) != 2 || l.Cover() != "https://img/a.jpg" {
		t.Errorf("photos = %v", l.Photos)
	}
	if l.Description != "Ótima localização" {
		t.Errorf("description = %q", l.Description)
	}
}

func TestNormalizeRegion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sp", "SP"},
		{" Mg ", "MG"},
		{"são paulo", "SÃ"},
		{"", ""},
		{"r", "R"},
	}
	for _, tt := range tests {
		if got := NormalizeRegion(tt.in); got != tt.want {
			t.Errorf("NormalizeRegion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewID()
		if !strings.HasPrefix(id, "imv_") {
			t.Fatalf("unexpected id format %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestFormStateOfRoundTrip(t *testing.T) {
	orig := Normalize(FormState{
		Title:      "Casa",
		TotalPrice: "1.234,56",
		TotalArea:  "300",
		Suites:     "2",
	}, fixedOptions("imv_rt"))

	st := FormStateOf(&orig)
	if len(st.Photos) != 0 {
		t.Errorf("placeholder leaked into form photos: %v", st.Photos)
	}

	again := Normalize(st, fixedOptions("imv_unused"))
	if again.TotalPrice != orig.TotalPrice || again.TotalArea != orig.TotalArea {
		t.Errorf("quantities changed: %v/%v -> %v/%v", orig.TotalPrice, orig.TotalArea, again.TotalPrice, again.TotalArea)
	}
	if again.Features != orig.Features {
		t.Errorf("features changed: %+v -> %+v", orig.Features, again.Features)
	}
	if again.ID != orig.ID {
		t.Errorf("id changed: %q -> %q", orig.ID, again.ID)
	}
}

func TestNormalizeHugeCountersBecomeZero(t *testing.T) {
	for _, in := range []string{"1e30", "9.3e18", "1e19"} {
		l := Normalize(FormState{Title: "x", Bedrooms: in, Pool: in}, fixedOptions("imv_1"))
		if l.Features.Bedrooms != 0 || l.Features.Pool != 0 {
			t.Errorf("Normalize(%q) features = %+v, want zero counters", in, l.Features)
		}
	}
}
