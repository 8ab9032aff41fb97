package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// validateDocument performs all structural checks on a decoded content
// document. Returns a combined error describing all problems found, or nil
// if valid. The JSON Schema catches shape errors; this catches the
// cross-field rules a schema cannot express.
func validateDocument(doc *document) error {
	var errs []string

	if len(doc.Volcanoes) == 0 {
		errs = append(errs, "no volcanoes defined")
	}

	nameSet := make(map[string]bool, len(doc.Volcanoes))
	orderSet := make(map[int]string, len(doc.Volcanoes))
	var orders []int

	for _, v := range doc.Volcanoes {
		if nameSet[v.Name] {
			errs = append(errs, fmt.Sprintf("duplicate volcano name: %q", v.Name))
		}
		nameSet[v.Name] = true

		if prev, taken := orderSet[v.Order]; taken {
			errs = append(errs, fmt.Sprintf("volcano %q reuses order %d already held by %q", v.Name, v.Order, prev))
		}
		orderSet[v.Order] = v.Name
		orders = append(orders, v.Order)

		if v.ModelAsset == "" {
			errs = append(errs, fmt.Sprintf("volcano %q has no model asset", v.Name))
		}
		if len(v.Games) == 0 {
			errs = append(errs, fmt.Sprintf("volcano %q has no games", v.Name))
		}

		typeSet := make(map[GameType]bool, len(v.Games))
		for _, g := range v.Games {
			prefix := fmt.Sprintf("volcano %q game %q", v.Name, g.Title)

			if _, ok := ParseGameType(string(g.Type)); !ok {
				errs = append(errs, fmt.Sprintf("%s: unknown game type %q", prefix, g.Type))
				continue
			}
			if typeSet[g.Type] {
				errs = append(errs, fmt.Sprintf("volcano %q has more than one %s game", v.Name, g.Type))
			}
			typeSet[g.Type] = true

			errs = append(errs, validateGame(prefix, g)...)
		}
	}

	// Orders must be contiguous so the one-step unlock walk can never
	// strand a volcano behind a gap.
	sort.Ints(orders)
	for i := 1; i < len(orders); i++ {
		if orders[i] != orders[i-1]+1 {
			errs = append(errs, fmt.Sprintf("volcano orders are not contiguous: gap between %d and %d", orders[i-1], orders[i]))
		}
	}

	errs = append(errs, validateAchievements(doc, nameSet)...)

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validateGame checks one game definition's payload against its type.
func validateGame(prefix string, g GameDef) []string {
	var errs []string

	switch g.Type {
	case GameQuiz:
		if len(g.Questions) == 0 {
			errs = append(errs, prefix+": quiz has no questions")
		}
		for i, q := range g.Questions {
			if len(q.Choices) < 2 {
				errs = append(errs, fmt.Sprintf("%s question %d: needs at least 2 choices, got %d", prefix, i, len(q.Choices)))
			}
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				errs = append(errs, fmt.Sprintf("%s question %d: answer index %d out of range [0,%d)", prefix, i, q.Answer, len(q.Choices)))
			}
		}
	case GameWordMatch:
		if len(g.Pairs) < 2 {
			errs = append(errs, prefix+": word match needs at least 2 pairs")
		}
		termSet := make(map[string]bool, len(g.Pairs))
		defSet := make(map[string]bool, len(g.Pairs))
		for _, p := range g.Pairs {
			if termSet[p.Term] {
				errs = append(errs, fmt.Sprintf("%s: duplicate term %q", prefix, p.Term))
			}
			termSet[p.Term] = true
			if defSet[p.Definition] {
				errs = append(errs, fmt.Sprintf("%s: duplicate definition %q", prefix, p.Definition))
			}
			defSet[p.Definition] = true
		}
	case GamePuzzle:
		if g.Puzzle == nil {
			errs = append(errs, prefix+": puzzle payload missing")
			break
		}
		if g.Puzzle.Rows <= 0 || g.Puzzle.Cols <= 0 {
			errs = append(errs, fmt.Sprintf("%s: grid %dx%d is invalid", prefix, g.Puzzle.Rows, g.Puzzle.Cols))
		}
		if want := g.Puzzle.Rows * g.Puzzle.Cols; len(g.Puzzle.Tiles) != want {
			errs = append(errs, fmt.Sprintf("%s: %d tiles for a %dx%d grid, want %d", prefix, len(g.Puzzle.Tiles), g.Puzzle.Rows, g.Puzzle.Cols, want))
		}
	case GameVolcanoBuilder:
		if len(g.Layers) < 2 {
			errs = append(errs, prefix+": builder needs at least 2 layers")
		}
		layerSet := make(map[string]bool, len(g.Layers))
		for _, l := range g.Layers {
			if layerSet[l.Name] {
				errs = append(errs, fmt.Sprintf("%s: duplicate layer %q", prefix, l.Name))
			}
			layerSet[l.Name] = true
		}
	}

	return errs
}

// validateAchievements checks achievement definitions against the volcano set.
func validateAchievements(doc *document, volcanoNames map[string]bool) []string {
	var errs []string

	if len(doc.Achievements) == 0 {
		errs = append(errs, "no achievements defined")
	}

	idSet := make(map[string]bool, len(doc.Achievements))
	for _, a := range doc.Achievements {
		if idSet[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate achievement ID: %q", a.ID))
		}
		idSet[a.ID] = true

		if a.Volcano != AllVolcanoes && !volcanoNames[a.Volcano] {
			errs = append(errs, fmt.Sprintf("achievement %q references nonexistent volcano %q", a.ID, a.Volcano))
		}
		if a.RequiredGames <= 0 {
			errs = append(errs, fmt.Sprintf("achievement %q: requiredGames must be > 0, got %d", a.ID, a.RequiredGames))
		}
		switch a.Tier {
		case TierBronze, TierSilver, TierGold:
		default:
			errs = append(errs, fmt.Sprintf("achievement %q: unknown tier %q", a.ID, a.Tier))
		}
	}

	return errs
}
