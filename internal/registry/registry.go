package registry

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalizedText is the per-locale display text of a game.
type LocalizedText struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Descriptor is one game's immutable metadata. The catalog is fixed at
// deployment time; nothing mutates descriptors at runtime.
type Descriptor struct {
	ID       string `yaml:"id" json:"id"`
	Slug     string `yaml:"slug" json:"slug"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Provider string `yaml:"provider" json:"provider"`

	MinBet float64 `yaml:"min_bet" json:"min_bet"`
	MaxBet float64 `yaml:"max_bet" json:"max_bet"`
	RTP    float64 `yaml:"rtp" json:"rtp"`

	Tags []string `yaml:"tags" json:"tags"`

	Active       bool `yaml:"active" json:"active"`
	RequiresAuth bool `yaml:"requires_auth" json:"requires_auth"`
	Featured     bool `yaml:"featured" json:"featured"`
	Popular      bool `yaml:"popular" json:"popular"`
	New          bool `yaml:"new" json:"new"`

	ComponentPath string `yaml:"component_path" json:"component_path"`

	Localized map[string]LocalizedText `yaml:"localized" json:"localized"`
}

// Registry is a read-only catalog of game descriptors, populated once
// at startup. Every lookup and filter considers active descriptors
// only, in declaration order.
type Registry struct {
	entries []Descriptor
	bySlug  map[string]int
	byID    map[string]int
}

type catalogFile struct {
	Games []Descriptor `yaml:"games"`
}

func New(entries []Descriptor) (*Registry, error) {
	reg := &Registry{
		entries: entries,
		bySlug:  make(map[string]int, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}

	for i, entry := range entries {
		if entry.ID == "" || entry.Slug == "" {
			return nil, fmt.Errorf("descriptor %d missing id or slug", i)
		}
		if _, ok := reg.byID[entry.ID]; ok {
			return nil, fmt.Errorf("duplicate game id: %s", entry.ID)
		}
		if _, ok := reg.bySlug[entry.Slug]; ok {
			return nil, fmt.Errorf("duplicate game slug: %s", entry.Slug)
		}
		reg.byID[entry.ID] = i
		reg.bySlug[entry.Slug] = i
	}

	return reg, nil
}

func Load(r io.Reader) (*Registry, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %v", err)
	}
	return New(file.Games)
}

func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %v", err)
	}
	defer f.Close()

	return Load(f)
}

// GetBySlug returns the active descriptor for the slug. A missing or
// inactive slug is an expected outcome, reported through the bool.
func (r *Registry) GetBySlug(slug string) (Descriptor, bool) {
	i, ok := r.bySlug[slug]
	if !ok || !r.entries[i].Active {
		return Descriptor{}, false
	}
	return r.entries[i], true
}

func (r *Registry) GetByID(id string) (Descriptor, bool) {
	i, ok := r.byID[id]
	if !ok || !r.entries[i].Active {
		return Descriptor{}, false
	}
	return r.entries[i], true
}

func (r *Registry) ByCategory(category string) []Descriptor {
	return r.filter(func(d Descriptor) bool { return d.Category == category })
}

func (r *Registry) ByProvider(provider string) []Descriptor {
	return r.filter(func(d Descriptor) bool { return d.Provider == provider })
}

func (r *Registry) Featured() []Descriptor {
	return r.filter(func(d Descriptor) bool { return d.Featured })
}

func (r *Registry) Popular() []Descriptor {
	return r.filter(func(d Descriptor) bool { return d.Popular })
}

func (r *Registry) New() []Descriptor {
	return r.filter(func(d Descriptor) bool { return d.New })
}

// Search matches the query case-insensitively as a substring of the
// name, every localized name and description, and the tags. Results
// keep declaration order; there is no ranking.
func (r *Registry) Search(query string) []Descriptor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Descriptor{}
	}

	return r.filter(func(d Descriptor) bool {
		if strings.Contains(strings.ToLower(d.Name), q) {
			return true
		}
		for _, text := range d.Localized {
			if strings.Contains(strings.ToLower(text.Name), q) ||
				strings.Contains(strings.ToLower(text.Description), q) {
				return true
			}
		}
		for _, tag := range d.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	})
}

// Categories returns the distinct categories of active descriptors in
// first-seen order.
func (r *Registry) Categories() []string {
	return r.distinct(func(d Descriptor) string { return d.Category })
}

func (r *Registry) Providers() []string {
	return r.distinct(func(d Descriptor) string { return d.Provider })
}

// Active returns every active descriptor in declaration order.
func (r *Registry) Active() []Descriptor {
	return r.filter(func(Descriptor) bool { return true })
}

// All returns every descriptor including inactive ones. Admin-only
// catalog introspection; lobby lookups never use it.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len counts active descriptors.
func (r *Registry) Len() int {
	n := 0
	for _, d := range r.entries {
		if d.Active {
			n++
		}
	}
	return n
}

func (r *Registry) filter(keep func(Descriptor) bool) []Descriptor {
	out := []Descriptor{}
	for _, d := range r.entries {
		if d.Active && keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func (r *Registry) distinct(field func(Descriptor) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, d := range r.entries {
		if !d.Active {
			continue
		}
		v := field(d)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
