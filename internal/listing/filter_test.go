package listing

import (
	"net/url"
	"testing"

	"github.com/amaralimoveis/vitrine/internal/model"
)

func sampleListings() []model.Listing {
	return []model.Listing{
		{ID: "1", Title: "Casa no centro", Category: model.CategoryHouse, Status: model.StatusAvailable,
			Location: model.Location{Neighborhood: "Centro", City: "Bariri"}},
		{ID: "2", Title: "Apartamento duplex", Category: model.CategoryApartment, Status: model.StatusSold,
			Location: model.Location{Neighborhood: "Jardim Paulista", City: "Jaú"}},
		{ID: "3", Title: "Chácara com piscina", Category: model.CategoryFarmLarge, Status: model.StatusAvailable,
			Location: model.Location{Neighborhood: "Zona Rural", City: "Bariri"}},
		{ID: "4", Title: "Terreno", Category: model.CategoryLot, Status: model.StatusNegotiating,
			Location: model.Location{Neighborhood: "Vila Nova", City: "Itaju"}},
	}
}

func ids(ls []model.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterAllReturnsEverythingInOrder(t *testing.T) {
	all := sampleListings()
	got := Filter(all, Criteria{Category: model.FilterAll, Status: model.FilterAll})
	if !equalIDs(ids(got), []string{"1", "2", "3", "4"}) {
		t.Errorf("expected full list in order, got %v", ids(got))
	}

	// Empty selectors behave like "todos".
	got = Filter(all, Criteria{})
	if len(got) != len(all) {
		t.Errorf("expected %d listings, got %d", len(all), len(got))
	}
}

func TestFilterText(t *testing.T) {
	all := sampleListings()
	tests := []struct {
		query string
		want  []string
	}{
		{"CASA", []string{"1"}},
		{"bariri", []string{"1", "3"}},
		{"  paulista ", []string{"2"}},
		{"jaú", []string{"2"}},
		// Diacritics are matched as typed.
		{"jau", []string{}},
		{"piscina", []string{"3"}},
	}

	for _, tt := range tests {
		got := Filter(all, Criteria{Query: tt.query, Category: model.FilterAll, Status: model.FilterAll})
		if !equalIDs(ids(got), tt.want) {
			t.Errorf("query %q: got %v, want %v", tt.query, ids(got), tt.want)
		}
	}
}

func TestFilterSelectorsAreANDed(t *testing.T) {
	all := sampleListings()

	got := Filter(all, Criteria{Category: model.FilterAll, Status: model.StatusAvailable})
	if !equalIDs(ids(got), []string{"1", "3"}) {
		t.Errorf("status filter: got %v", ids(got))
	}

	got = Filter(all, Criteria{Query: "bariri", Category: model.CategoryFarmLarge, Status: model.StatusAvailable})
	if !equalIDs(ids(got), []string{"3"}) {
		t.Errorf("combined filter: got %v", ids(got))
	}

	got = Filter(all, Criteria{Query: "bariri", Category: model.CategoryApartment})
	if len(got) != 0 {
		t.Errorf("expected no match, got %v", ids(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	all := sampleListings()
	Filter(all, Criteria{Status: model.StatusSold})
	if !equalIDs(ids(all), []string{"1", "2", "3", "4"}) {
		t.Errorf("input modified: %v", ids(all))
	}
}

func TestCriteriaFromValues(t *testing.T) {
	v := url.Values{"q": {"centro"}, "tipo": {"casa"}, "status": {"todos"}}
	c := CriteriaFromValues(v)
	if c.Query != "centro" || c.Category != "casa" || c.Status != "todos" {
		t.Errorf("unexpected criteria %+v", c)
	}
	if c.IsEmpty() {
		t.Error("expected non-empty criteria")
	}
	if !(Criteria{Status: model.FilterAll}).IsEmpty() {
		t.Error("expected empty criteria")
	}
}
