package freetogame

import (
	"encoding/json"
	"strings"
)

type gameResponse struct {
	ID               int          `json:"id"`
	Title            optionalText `json:"title"`
	Thumbnail        optionalText `json:"thumbnail"`
	ShortDescription optionalText `json:"short_description"`
	Description      optionalText `json:"description"`
	GameURL          optionalText `json:"game_url"`
	Genre            optionalText `json:"genre"`
	Platform         optionalText `json:"platform"`
	Publisher        optionalText `json:"publisher"`
	Developer        optionalText `json:"developer"`
	ReleaseDate      optionalText `json:"release_date"`
}

// optionalText decodes a JSON string. Any other JSON value decodes as absent
// so one malformed field does not fail the whole catalog.
type optionalText string

func (t *optionalText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = optionalText(s)
	return nil
}

func (t optionalText) trimmed() string {
	return strings.TrimSpace(string(t))
}

// statusResponse is the object the API returns instead of a list when a query has no results or fails.
type statusResponse struct {
	Status        int    `json:"status"`
	StatusMessage string `json:"status_message"`
}
