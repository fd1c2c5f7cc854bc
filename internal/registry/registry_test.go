package registry_test

import (
	"strings"
	"testing"

	"casino-webapp-backend/internal/registry"
)

func testEntries() []registry.Descriptor {
	return []registry.Descriptor{
		{
			ID:       "g-1",
			Slug:     "sweet-bonanza-premium",
			Name:     "Sweet Bonanza Premium",
			Category: "slots",
			Provider: "pragmatic",
			Tags:     []string{"sweet-bonanza", "candy"},
			Active:   true,
			Featured: true,
			Popular:  true,
			Localized: map[string]registry.LocalizedText{
				"en": {Name: "Sweet Bonanza Premium", Description: "Tumbling candy slot."},
				"tr": {Name: "Sweet Bonanza Premium", Description: "Düşen şeker temalı slot."},
			},
			ComponentPath: "slots/sweet-bonanza-premium",
			RequiresAuth:  true,
		},
		{
			ID:       "g-2",
			Slug:     "classic-dice",
			Name:     "Classic Dice",
			Category: "instant",
			Provider: "house",
			Tags:     []string{"dice"},
			Active:   true,
			Popular:  true,
			New:      true,
			Localized: map[string]registry.LocalizedText{
				"en": {Name: "Classic Dice", Description: "Roll over or under a target."},
				"tr": {Name: "Klasik Zar", Description: "Hedefin altına veya üstüne oyna."},
			},
			ComponentPath: "instant/classic-dice",
			RequiresAuth:  true,
		},
		{
			ID:       "g-3",
			Slug:     "retired-fruit-blast",
			Name:     "Fruit Blast",
			Category: "slots",
			Provider: "netgame",
			Tags:     []string{"fruit"},
			Active:   false,
			Featured: true,
		},
	}
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := registry.New(testEntries())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}
	return reg
}

func TestGetBySlug(t *testing.T) {
	reg := newRegistry(t)

	game, ok := reg.GetBySlug("sweet-bonanza-premium")
	if !ok {
		t.Fatal("Expected to find sweet-bonanza-premium")
	}
	if game.ID != "g-1" {
		t.Errorf("Expected g-1, got %s", game.ID)
	}

	if _, ok := reg.GetBySlug("nonexistent"); ok {
		t.Error("Unknown slug must report not-found")
	}
	if _, ok := reg.GetBySlug("retired-fruit-blast"); ok {
		t.Error("Inactive descriptors must report not-found")
	}
}

func TestGetByID(t *testing.T) {
	reg := newRegistry(t)

	if _, ok := reg.GetByID("g-2"); !ok {
		t.Error("Expected to find g-2")
	}
	if _, ok := reg.GetByID("g-3"); ok {
		t.Error("Inactive id must report not-found")
	}
}

func TestFiltersSkipInactive(t *testing.T) {
	reg := newRegistry(t)

	slots := reg.ByCategory("slots")
	if len(slots) != 1 || slots[0].Slug != "sweet-bonanza-premium" {
		t.Errorf("ByCategory should skip inactive entries: %+v", slots)
	}

	featured := reg.Featured()
	if len(featured) != 1 {
		t.Errorf("Featured should skip inactive entries, got %d", len(featured))
	}

	if got := len(reg.Popular()); got != 2 {
		t.Errorf("Expected 2 popular games, got %d", got)
	}
	if got := len(reg.New()); got != 1 {
		t.Errorf("Expected 1 new game, got %d", got)
	}
	if got := len(reg.ByProvider("house")); got != 1 {
		t.Errorf("Expected 1 house game, got %d", got)
	}
}

func TestSearchMatchesTagsCaseInsensitive(t *testing.T) {
	reg := newRegistry(t)

	results := reg.Search("SWEET")
	if len(results) != 1 || results[0].Slug != "sweet-bonanza-premium" {
		t.Errorf("Expected tag match for SWEET, got %+v", results)
	}

	// Matches a localized description even when the display name differs.
	results = reg.Search("zar")
	if len(results) != 1 || results[0].Slug != "classic-dice" {
		t.Errorf("Expected localized-name match for zar, got %+v", results)
	}

	if got := reg.Search("no-such-game"); len(got) != 0 {
		t.Errorf("Expected empty result, got %+v", got)
	}
	if got := reg.Search(""); len(got) != 0 {
		t.Errorf("Blank query should return nothing, got %+v", got)
	}
}

func TestDistinctFirstSeenOrder(t *testing.T) {
	reg := newRegistry(t)

	categories := reg.Categories()
	if len(categories) != 2 || categories[0] != "slots" || categories[1] != "instant" {
		t.Errorf("Expected [slots instant], got %v", categories)
	}

	providers := reg.Providers()
	if len(providers) != 2 || providers[0] != "pragmatic" || providers[1] != "house" {
		t.Errorf("Expected [pragmatic house], got %v", providers)
	}
}

func TestDuplicateSlugRejected(t *testing.T) {
	entries := testEntries()
	entries[1].Slug = entries[0].Slug

	if _, err := registry.New(entries); err == nil {
		t.Error("Expected duplicate slug error")
	}
}

func TestLoadYAML(t *testing.T) {
	data := `
games:
  - id: g-9
    slug: mini-roulette
    name: Mini Roulette
    category: table
    provider: house
    min_bet: 0.5
    max_bet: 50
    rtp: 97.3
    tags: [roulette]
    active: true
    requires_auth: false
    component_path: table/mini-roulette
    localized:
      en:
        name: Mini Roulette
        description: A compact roulette wheel.
`
	reg, err := registry.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to load YAML catalog: %v", err)
	}

	game, ok := reg.GetBySlug("mini-roulette")
	if !ok {
		t.Fatal("Expected mini-roulette in loaded catalog")
	}
	if game.RTP != 97.3 || game.ComponentPath != "table/mini-roulette" {
		t.Errorf("Catalog fields did not survive parsing: %+v", game)
	}
}
