package games

import (
	"strings"
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/timeutil"
)

// PlatformKind buckets the free-form upstream platform string.
type PlatformKind string

const (
	PlatformPC      PlatformKind = "pc"
	PlatformBrowser PlatformKind = "browser"
	PlatformOther   PlatformKind = "other"
)

// Date is a calendar date serialized as YYYY-MM-DD. The zero value means the
// upstream date was missing or unparseable.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate is lenient: anything that is not a YYYY-MM-DD date yields the zero Date.
func ParseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	parsed, err := timeutil.ParseDate(raw)
	if err != nil {
		return Date{}
	}
	return Date{Time: parsed}
}

// String returns YYYY-MM-DD, or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return timeutil.FormatDate(d.Time)
}

// MarshalJSON writes null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// MarshalText keeps text encoders (YAML, tables) on the YYYY-MM-DD form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a date string or null; malformed values become the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		*d = Date{}
		return nil
	}
	*d = ParseDate(raw)
	return nil
}

// Game is a single free-to-play catalog entry. Empty strings mean the upstream
// field was absent.
type Game struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Thumbnail        string `json:"thumbnail"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	GameURL          string `json:"game_url"`
	Genre            string `json:"genre"`
	Platform         string `json:"platform"`
	Publisher        string `json:"publisher"`
	Developer        string `json:"developer"`
	ReleaseDate      Date   `json:"release_date"`
}

// HasThumbnail reports whether the game carries a usable thumbnail URL.
func (g Game) HasThumbnail() bool {
	return strings.TrimSpace(g.Thumbnail) != ""
}

// PlatformKind classifies the platform string for badge display.
func (g Game) PlatformKind() PlatformKind {
	platform := strings.ToLower(g.Platform)
	switch {
	case strings.Contains(platform, "pc"), strings.Contains(platform, "windows"):
		return PlatformPC
	case strings.Contains(platform, "web"), strings.Contains(platform, "browser"):
		return PlatformBrowser
	default:
		return PlatformOther
	}
}

// Excerpt returns at most n runes of the short description, with an ellipsis when trimmed.
func (g Game) Excerpt(n int) string {
	runes := []rune(g.ShortDescription)
	if n <= 0 || len(runes) <= n {
		return g.ShortDescription
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// PageResponse describes the visible slice of a filtered catalog view.
type PageResponse struct {
	Filter   string `json:"filter"`
	Search   string `json:"search,omitempty"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
	HasMore  bool   `json:"has_more"`
	Games    []Game `json:"games"`
}

// FeaturedResponse is the carousel payload.
type FeaturedResponse struct {
	Games []Game `json:"games"`
}

// CategoryInfo names one catalog category.
type CategoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoriesResponse lists the catalog categories in display order.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// CatalogSnapshot is the persisted form of a full catalog fetch.
type CatalogSnapshot struct {
	Date      string    `json:"date"`
	FetchedAt time.Time `json:"fetched_at"`
	Games     []Game    `json:"games"`
}

// NewCatalogSnapshot builds a CatalogSnapshot payload.
func NewCatalogSnapshot(date string, fetchedAt time.Time, games []Game) CatalogSnapshot {
	return CatalogSnapshot{
		Date:      date,
		FetchedAt: fetchedAt.UTC(),
		Games:     games,
	}
}
