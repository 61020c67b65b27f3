package model

import "testing"

func TestLabels(t *testing.T) {
	if got := CategoryLabel(CategoryFarmLarge); got != "Chácara" {
		t.Errorf("CategoryLabel(chacara) = %q", got)
	}
	if got := StatusLabel(StatusNegotiating); got != "Em negociação" {
		t.Errorf("StatusLabel(negociacao) = %q", got)
	}
	// Unknown values are shown as typed.
	if got := CategoryLabel("galpao"); got != "galpao" {
		t.Errorf("CategoryLabel(galpao) = %q", got)
	}
	if got := StatusLabel(""); got != "" {
		t.Errorf("StatusLabel(\"\") = %q", got)
	}
}

func TestCover(t *testing.T) {
	l := &Listing{}
	if l.Cover() != "" {
		t.Errorf("expected empty cover, got %q", l.Cover())
	}
	l.Photos = []string{"https://img/1.jpg", "https://img/2.jpg"}
	if l.Cover() != "https://img/1.jpg" {
		t.Errorf("expected first photo as cover, got %q", l.Cover())
	}
}
