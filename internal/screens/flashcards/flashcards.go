package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	cards "github.com/tectonhq/tecton/internal/flashcards"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// FlashcardsScreen browses fact cards. Tab narrows the deck to a single
// volcano; browsing never touches progress.
type FlashcardsScreen struct {
	cat    *catalog.Catalog
	deck   *cards.Deck
	filter int // index into cat.Volcanoes(), -1 for every volcano
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen over the full catalog deck.
func New(cat *catalog.Catalog) *FlashcardsScreen {
	return &FlashcardsScreen{
		cat:    cat,
		deck:   cards.NewDeck(cat),
		filter: -1,
	}
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Browse"},
		{Key: "Space", Description: "Flip"},
		{Key: "Tab", Description: "Deck"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "right", "l", "n":
		s.deck.Next()
	case "left", "h", "p":
		s.deck.Prev()
	case "space", "enter", "f":
		s.deck.Flip()
	case "tab":
		s.cycleDeck()
	}
	return s, nil
}

// cycleDeck steps all volcanoes -> volcano 1 -> ... -> back to all.
func (s *FlashcardsScreen) cycleDeck() {
	vs := s.cat.Volcanoes()
	s.filter++
	if s.filter >= len(vs) {
		s.filter = -1
	}
	if s.filter == -1 {
		s.deck = cards.NewDeck(s.cat)
		return
	}
	s.deck = cards.NewVolcanoDeck(vs[s.filter])
}

func (s *FlashcardsScreen) View(width, height int) string {
	var b strings.Builder

	deckName := "All volcanoes"
	if s.filter >= 0 {
		vs := s.cat.Volcanoes()
		deckName = vs[s.filter].Name
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Deck: %s", deckName)))
	b.WriteString("\n\n")

	card, ok := s.deck.Current()
	if !ok {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No facts in this deck yet."))
		return b.String()
	}

	cw := components.ContentWidth(width)
	var face string
	if s.deck.Flipped() {
		title := lipgloss.NewStyle().Foreground(theme.TextDim).Render(card.Title)
		body := lipgloss.NewStyle().Foreground(theme.Text).Render(card.Body)
		face = title + "\n\n" + body
	} else {
		volcano := lipgloss.NewStyle().Foreground(theme.Secondary).Render(card.Volcano)
		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(card.Title)
		face = volcano + "\n\n" + title
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(face, cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Card %d/%d", s.deck.Index()+1, s.deck.Len())))
	b.WriteString("\n")

	hint := "Space to flip"
	if s.deck.Flipped() {
		hint = "Space to flip back"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(hint))

	return b.String()
}
