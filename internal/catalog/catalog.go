package catalog

import (
	"slices"
	"sort"
)

// Catalog holds the validated volcano content with precomputed indices.
// It is immutable after Load; share one instance across the app.
type Catalog struct {
	version      int
	volcanoes    []Volcano
	byName       map[string]*Volcano
	achievements []Achievement
	gameTotal    int
}

// document is the raw YAML shape of the content file.
type document struct {
	Version      int           `yaml:"version"`
	Volcanoes    []Volcano     `yaml:"volcanoes"`
	Achievements []Achievement `yaml:"achievements"`
}

// build constructs the Catalog from a decoded document, sorting volcanoes by
// order and indexing by name. The document must already be validated.
func build(doc *document) *Catalog {
	c := &Catalog{
		version:      doc.Version,
		volcanoes:    slices.Clone(doc.Volcanoes),
		byName:       make(map[string]*Volcano, len(doc.Volcanoes)),
		achievements: slices.Clone(doc.Achievements),
	}

	sort.Slice(c.volcanoes, func(i, j int) bool {
		return c.volcanoes[i].Order < c.volcanoes[j].Order
	})

	for i := range c.volcanoes {
		c.byName[c.volcanoes[i].Name] = &c.volcanoes[i]
		c.gameTotal += len(c.volcanoes[i].Games)
	}

	return c
}

// Version returns the content document version.
func (c *Catalog) Version() int {
	return c.version
}

// Volcanoes returns all volcanoes sorted by display order.
func (c *Catalog) Volcanoes() []Volcano {
	return slices.Clone(c.volcanoes)
}

// ByName returns the volcano with the given name.
func (c *Catalog) ByName(name string) (Volcano, bool) {
	v, ok := c.byName[name]
	if !ok {
		return Volcano{}, false
	}
	return *v, true
}

// FirstOrder returns the minimum display order. The volcano holding it is
// the one that is always unlocked.
func (c *Catalog) FirstOrder() int {
	if len(c.volcanoes) == 0 {
		return 0
	}
	return c.volcanoes[0].Order
}

// NextAfter returns the volcano with the smallest order strictly greater
// than the given order, if one exists.
func (c *Catalog) NextAfter(order int) (Volcano, bool) {
	for _, v := range c.volcanoes {
		if v.Order > order {
			return v, true
		}
	}
	return Volcano{}, false
}

// Achievements returns all achievement definitions in definition order.
// Definition order is the tie-breaker when several achievements become
// newly earned at once, so it is part of the content contract.
func (c *Catalog) Achievements() []Achievement {
	return slices.Clone(c.achievements)
}

// AchievementByID returns the achievement definition with the given ID.
func (c *Catalog) AchievementByID(id string) (Achievement, bool) {
	for _, a := range c.achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// GameTotal returns the number of tracked games across all volcanoes.
func (c *Catalog) GameTotal() int {
	return c.gameTotal
}

// RequiredFor returns the count a definition needs, capped for display
// against the actual number of games its volcano carries.
func (c *Catalog) RequiredFor(a Achievement) (required, available int) {
	if a.Global() {
		return a.RequiredGames, c.gameTotal
	}
	v, ok := c.byName[a.Volcano]
	if !ok {
		return a.RequiredGames, 0
	}
	return a.RequiredGames, len(v.Games)
}

// ModelAssets returns the volcano-name to model-asset mapping consumed by
// the external 3D viewer.
func (c *Catalog) ModelAssets() map[string]string {
	m := make(map[string]string, len(c.volcanoes))
	for _, v := range c.volcanoes {
		m[v.Name] = v.ModelAsset
	}
	return m
}
