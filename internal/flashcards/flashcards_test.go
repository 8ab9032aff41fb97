package flashcards

import (
	"testing"

	"github.com/tectonhq/tecton/internal/catalog"
)

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func TestNewDeckHoldsEveryFact(t *testing.T) {
	cat := loadTestCatalog(t)
	d := NewDeck(cat)

	want := 0
	for _, v := range cat.Volcanoes() {
		want += len(v.Facts)
	}
	if d.Len() != want {
		t.Errorf("deck size = %d, want %d", d.Len(), want)
	}

	card, ok := d.Current()
	if !ok {
		t.Fatal("expected a current card")
	}
	first := cat.Volcanoes()[0]
	if card.Volcano != first.Name {
		t.Errorf("first card volcano = %q, want %q", card.Volcano, first.Name)
	}
	if card.Title != first.Facts[0].Title {
		t.Errorf("first card title = %q, want %q", card.Title, first.Facts[0].Title)
	}
}

func TestVolcanoDeckFilters(t *testing.T) {
	cat := loadTestCatalog(t)
	v, ok := cat.ByName("Kilauea")
	if !ok {
		t.Fatal("Kilauea missing from catalog")
	}
	d := NewVolcanoDeck(v)

	if d.Len() != len(v.Facts) {
		t.Fatalf("deck size = %d, want %d", d.Len(), len(v.Facts))
	}
	for i := 0; i < d.Len(); i++ {
		card, _ := d.Current()
		if card.Volcano != "Kilauea" {
			t.Errorf("card %d volcano = %q, want Kilauea", i, card.Volcano)
		}
		d.Next()
	}
}

func TestNextWrapsAround(t *testing.T) {
	cat := loadTestCatalog(t)
	v, _ := cat.ByName("Mount Fuji")
	d := NewVolcanoDeck(v)

	for i := 0; i < d.Len(); i++ {
		d.Next()
	}
	if d.Index() != 0 {
		t.Errorf("index = %d after a full cycle, want 0", d.Index())
	}
}

func TestPrevWrapsBackward(t *testing.T) {
	cat := loadTestCatalog(t)
	v, _ := cat.ByName("Mount Fuji")
	d := NewVolcanoDeck(v)

	d.Prev()
	if d.Index() != d.Len()-1 {
		t.Errorf("index = %d, want %d after Prev from start", d.Index(), d.Len()-1)
	}
}

func TestFlipTogglesAndNavigationResets(t *testing.T) {
	cat := loadTestCatalog(t)
	d := NewDeck(cat)

	if d.Flipped() {
		t.Error("cards start face down")
	}
	d.Flip()
	if !d.Flipped() {
		t.Error("flip should show the back")
	}
	d.Flip()
	if d.Flipped() {
		t.Error("second flip should show the front again")
	}

	d.Flip()
	d.Next()
	if d.Flipped() {
		t.Error("Next should reset the flip state")
	}
	d.Flip()
	d.Prev()
	if d.Flipped() {
		t.Error("Prev should reset the flip state")
	}
}

func TestEmptyDeckIsSafe(t *testing.T) {
	d := NewVolcanoDeck(catalog.Volcano{Name: "Bare"})

	if _, ok := d.Current(); ok {
		t.Error("empty deck has no current card")
	}
	d.Next()
	d.Prev()
	d.Flip()
	if d.Len() != 0 || d.Index() != 0 {
		t.Errorf("empty deck mutated: len=%d index=%d", d.Len(), d.Index())
	}
}
