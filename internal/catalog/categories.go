package catalog

import (
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// Category identifies a named predicate over the catalog.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryMMORPG     Category = "mmorpg"
	CategoryShooter    Category = "shooter"
	CategorySailing    Category = "sailing"
	CategoryPermadeath Category = "permadeath"
	CategorySuperhero  Category = "superhero"
	CategoryPixel      Category = "pixel"
)

type field func(games.Game) string

func title(g games.Game) string            { return g.Title }
func shortDescription(g games.Game) string { return g.ShortDescription }
func description(g games.Game) string      { return g.Description }
func genre(g games.Game) string            { return g.Genre }
func developer(g games.Game) string        { return g.Developer }

// clause matches when any keyword appears in any of the fields.
type clause struct {
	fields   []field
	keywords []string
}

func (c clause) matches(g games.Game) bool {
	for _, f := range c.fields {
		value := f(g)
		if value == "" {
			continue
		}
		folded := fold(value)
		for _, kw := range c.keywords {
			if strings.Contains(folded, kw) {
				return true
			}
		}
	}
	return false
}

var (
	textFields      = []field{title, shortDescription, description}
	textGenreFields = []field{title, shortDescription, description, genre}
)

// categoryRules is the fixed predicate table. A category matches when any of
// its clauses matches. Keywords are stored folded.
var categoryRules = map[Category][]clause{
	CategoryMMORPG: {
		{fields: []field{genre}, keywords: []string{"mmorpg"}},
	},
	CategoryShooter: {
		{fields: []field{genre}, keywords: []string{"shooter"}},
	},
	CategorySailing: {
		{fields: textGenreFields, keywords: []string{"sail", "boat", "sea", "ocean", "naval", "pirate"}},
	},
	CategoryPermadeath: {
		{fields: textFields, keywords: []string{"permadeath", "perma death", "perma-death", "hardcore", "roguelike"}},
	},
	CategorySuperhero: {
		{fields: textFields, keywords: []string{"superhero", "super hero", "marvel", "dc", "comic"}},
		{fields: []field{genre}, keywords: []string{"superhero"}},
	},
	CategoryPixel: {
		{fields: textGenreFields, keywords: []string{"pixel", "retro", "8-bit", "8bit", "16-bit"}},
	},
}

var categoryOrder = []Category{
	CategoryAll,
	CategoryMMORPG,
	CategoryShooter,
	CategorySailing,
	CategoryPermadeath,
	CategorySuperhero,
	CategoryPixel,
}

// Categories lists every defined category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Known reports whether c is part of the fixed enumeration.
func (c Category) Known() bool {
	if c == CategoryAll {
		return true
	}
	_, ok := categoryRules[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

var categoryLabels = map[Category]string{
	CategoryAll:        "All Games",
	CategoryMMORPG:     "MMORPG",
	CategoryShooter:    "Shooter",
	CategorySailing:    "Sailing",
	CategoryPermadeath: "Permadeath",
	CategorySuperhero:  "Superhero",
	CategoryPixel:      "Pixel",
}

// Label is the display name for c, or the raw identifier when c is unknown.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Describe lists every category with its display label.
func Describe() games.CategoriesResponse {
	out := games.CategoriesResponse{Categories: make([]games.CategoryInfo, 0, len(categoryOrder))}
	for _, c := range categoryOrder {
		out.Categories = append(out.Categories, games.CategoryInfo{ID: string(c), Label: c.Label()})
	}
	return out
}

// ParseCategory normalizes raw and rejects identifiers outside the
// enumeration. An empty string means CategoryAll.
func ParseCategory(raw string) (Category, error) {
	normalized := Category(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return CategoryAll, nil
	}
	if !normalized.Known() {
		return CategoryAll, &ConfigurationError{Category: raw, Err: ErrUnknownCategory}
	}
	return normalized, nil
}

// Matches reports whether g belongs to category. Unknown categories behave
// like CategoryAll.
func Matches(category Category, g games.Game) bool {
	rules, ok := categoryRules[category]
	if !ok {
		return true
	}
	for _, c := range rules {
		if c.matches(g) {
			return true
		}
	}
	return false
}
