package catalog

// GameType identifies one of the tracked mini-game kinds.
//
// The string values are the serialized enum names used in save data; they
// must stay stable so progress written by older builds keeps loading.
type GameType string

const (
	GameQuiz           GameType = "quiz"
	GameWordMatch      GameType = "wordMatch"
	GamePuzzle         GameType = "puzzle"
	GameVolcanoBuilder GameType = "volcanoBuilder"
)

// AllGameTypes returns all game types in display order.
func AllGameTypes() []GameType {
	return []GameType{GameQuiz, GameWordMatch, GamePuzzle, GameVolcanoBuilder}
}

// ParseGameType converts a serialized name back to a GameType.
func ParseGameType(s string) (GameType, bool) {
	switch GameType(s) {
	case GameQuiz, GameWordMatch, GamePuzzle, GameVolcanoBuilder:
		return GameType(s), true
	}
	return "", false
}

// DisplayName returns a human-readable label for the game type.
func (t GameType) DisplayName() string {
	switch t {
	case GameQuiz:
		return "Quiz"
	case GameWordMatch:
		return "Word Match"
	case GamePuzzle:
		return "Jigsaw Puzzle"
	case GameVolcanoBuilder:
		return "Volcano Builder"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the game type.
func (t GameType) Icon() string {
	switch t {
	case GameQuiz:
		return "❓"
	case GameWordMatch:
		return "🔤"
	case GamePuzzle:
		return "🧩"
	case GameVolcanoBuilder:
		return "🌋"
	default:
		return "•"
	}
}

// Tier represents an achievement rank.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// AllTiers returns all tiers in order from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierBronze:
		return "🥉"
	case TierSilver:
		return "🥈"
	case TierGold:
		return "🥇"
	default:
		return "🏅"
	}
}

// AllVolcanoes is the sentinel volcano name on achievement definitions whose
// required count sums completed games across every volcano.
const AllVolcanoes = "All Volcanoes"

// Fact is a single narrated fact card for a volcano.
type Fact struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Question is one multiple-choice quiz question. Answer indexes into Choices.
type Question struct {
	Prompt      string   `yaml:"prompt"`
	Choices     []string `yaml:"choices"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// MatchPair is one term/definition pair for the word-match game.
type MatchPair struct {
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
}

// PuzzleSpec describes a jigsaw grid. Tiles are listed in solved order: tile
// i belongs in slot i, slots laid out row-major across Cols columns.
type PuzzleSpec struct {
	Rows  int      `yaml:"rows"`
	Cols  int      `yaml:"cols"`
	Tiles []string `yaml:"tiles"`
}

// BuilderLayer is one structural layer of the volcano-builder game, listed
// bottom-to-top in build order.
type BuilderLayer struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// GameDef defines one mini-game attached to a volcano. Exactly one payload
// field is populated, matching Type.
type GameDef struct {
	Type      GameType       `yaml:"type"`
	Title     string         `yaml:"title"`
	Questions []Question     `yaml:"questions,omitempty"`
	Pairs     []MatchPair    `yaml:"pairs,omitempty"`
	Puzzle    *PuzzleSpec    `yaml:"puzzle,omitempty"`
	Layers    []BuilderLayer `yaml:"layers,omitempty"`
}

// Volcano is a top-level content unit: an unlock gate plus an ordered set of
// mini-games, facts, and the model asset the 3D viewer collaborator loads.
type Volcano struct {
	Name            string    `yaml:"name"`
	Order           int       `yaml:"order"`
	Location        string    `yaml:"location"`
	Kind            string    `yaml:"kind"`
	ElevationMeters int       `yaml:"elevationMeters"`
	ModelAsset      string    `yaml:"modelAsset"`
	Summary         string    `yaml:"summary"`
	Facts           []Fact    `yaml:"facts"`
	Games           []GameDef `yaml:"games"`
}

// Game returns the volcano's game definition for the given type.
func (v Volcano) Game(t GameType) (GameDef, bool) {
	for _, g := range v.Games {
		if g.Type == t {
			return g, true
		}
	}
	return GameDef{}, false
}

// Achievement is an immutable achievement definition. Earned state is never
// stored on it; evaluators re-derive it from completion counts.
type Achievement struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Volcano       string `yaml:"volcano"`
	RequiredGames int    `yaml:"requiredGames"`
	Tier          Tier   `yaml:"tier"`
}

// Global reports whether the achievement counts games across all volcanoes.
func (a Achievement) Global() bool {
	return a.Volcano == AllVolcanoes
}
