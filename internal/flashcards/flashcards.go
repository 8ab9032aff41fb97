// Package flashcards implements the fact-browsing deck. Browsing is pure
// reference material: it never records completion or touches progress.
package flashcards

import "github.com/tectonhq/tecton/internal/catalog"

// Card is one flashcard: the fact title on the front, its body on the back.
type Card struct {
	Volcano string
	Title   string
	Body    string
}

// Deck is a cyclic card browser with a flip state per view.
type Deck struct {
	cards   []Card
	index   int
	flipped bool
}

// NewDeck builds a deck holding every fact of every volcano in catalog
// order.
func NewDeck(cat *catalog.Catalog) *Deck {
	d := &Deck{}
	for _, v := range cat.Volcanoes() {
		for _, f := range v.Facts {
			d.cards = append(d.cards, Card{Volcano: v.Name, Title: f.Title, Body: f.Body})
		}
	}
	return d
}

// NewVolcanoDeck builds a deck over a single volcano's facts.
func NewVolcanoDeck(v catalog.Volcano) *Deck {
	d := &Deck{}
	for _, f := range v.Facts {
		d.cards = append(d.cards, Card{Volcano: v.Name, Title: f.Title, Body: f.Body})
	}
	return d
}

// Current returns the card under the cursor, or false for an empty deck.
func (d *Deck) Current() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[d.index], true
}

// Next moves to the following card, wrapping at the end. The new card
// starts face down.
func (d *Deck) Next() {
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index + 1) % len(d.cards)
	d.flipped = false
}

// Prev moves to the preceding card, wrapping at the start. The new card
// starts face down.
func (d *Deck) Prev() {
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index - 1 + len(d.cards)) % len(d.cards)
	d.flipped = false
}

// Flip turns the current card over.
func (d *Deck) Flip() {
	if len(d.cards) == 0 {
		return
	}
	d.flipped = !d.flipped
}

// Flipped reports whether the current card shows its back.
func (d *Deck) Flipped() bool {
	return d.flipped
}

// Index returns the cursor position.
func (d *Deck) Index() int {
	return d.index
}

// Len returns the deck size.
func (d *Deck) Len() int {
	return len(d.cards)
}
