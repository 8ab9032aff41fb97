package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, c.Version())
	assert.Len(t, c.Volcanoes(), 5)
	assert.Equal(t, 16, c.GameTotal())
	assert.Len(t, c.Achievements(), 18)
}

func TestVolcanoesSortedByOrder(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	vs := c.Volcanoes()
	for i := 1; i < len(vs); i++ {
		assert.Less(t, vs[i-1].Order, vs[i].Order,
			"volcano %q should come before %q", vs[i-1].Name, vs[i].Name)
	}
	assert.Equal(t, "Mount Vesuvius", vs[0].Name)
	assert.Equal(t, c.FirstOrder(), vs[0].Order)
}

func TestByName(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	v, ok := c.ByName("Mount St. Helens")
	require.True(t, ok)
	assert.Equal(t, 2, v.Order)
	assert.Equal(t, "st_helens_model", v.ModelAsset)

	_, ok = c.ByName("Mount Doom")
	assert.False(t, ok)
}

func TestNextAfter(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	next, ok := c.NextAfter(1)
	require.True(t, ok)
	assert.Equal(t, "Mount St. Helens", next.Name)

	last := c.Volcanoes()[len(c.Volcanoes())-1]
	_, ok = c.NextAfter(last.Order)
	assert.False(t, ok, "no volcano should follow the last order")
}

func TestVolcanoGameLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	v, ok := c.ByName("Mount Vesuvius")
	require.True(t, ok)

	g, ok := v.Game(GameQuiz)
	require.True(t, ok)
	assert.NotEmpty(t, g.Questions)

	// Vesuvius carries quiz, wordMatch, and volcanoBuilder but no puzzle.
	_, ok = v.Game(GamePuzzle)
	assert.False(t, ok)
}

func TestEveryQuizAnswerInRange(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, v := range c.Volcanoes() {
		for _, g := range v.Games {
			for i, q := range g.Questions {
				assert.GreaterOrEqual(t, q.Answer, 0, "%s question %d", v.Name, i)
				assert.Less(t, q.Answer, len(q.Choices), "%s question %d", v.Name, i)
			}
		}
	}
}

func TestAchievementDefinitionOrder(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	defs := c.Achievements()
	require.NotEmpty(t, defs)

	// The per-volcano novice comes before the global catch-all so the
	// novice is the one surfaced first when both qualify at once.
	idx := make(map[string]int, len(defs))
	for i, a := range defs {
		idx[a.ID] = i
	}
	assert.Less(t, idx["vesuvius-novice"], idx["first-eruption"])

	a, ok := c.AchievementByID("ring-of-fire")
	require.True(t, ok)
	assert.True(t, a.Global())
	assert.Equal(t, c.GameTotal(), a.RequiredGames)
	assert.Equal(t, TierGold, a.Tier)
}

func TestRequiredFor(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	a, ok := c.AchievementByID("fuji-master")
	require.True(t, ok)
	required, available := c.RequiredFor(a)
	assert.Equal(t, 4, required)
	assert.Equal(t, 4, available)

	g, ok := c.AchievementByID("globe-trotter")
	require.True(t, ok)
	required, available = c.RequiredFor(g)
	assert.Equal(t, 8, required)
	assert.Equal(t, c.GameTotal(), available)
}

func TestModelAssets(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assets := c.ModelAssets()
	assert.Len(t, assets, 5)
	for name, asset := range assets {
		assert.NotEmpty(t, asset, "volcano %q has no model asset", name)
	}
}

func TestGameTypeRoundTrip(t *testing.T) {
	for _, gt := range AllGameTypes() {
		parsed, ok := ParseGameType(string(gt))
		require.True(t, ok)
		assert.Equal(t, gt, parsed)
	}

	_, ok := ParseGameType("flashcards")
	assert.False(t, ok, "flashcards are not a tracked game type")
}
