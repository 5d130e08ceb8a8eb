package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Genre is the flavor a prompt is rendered with.
type Genre string

const (
	// GenreAny requests no particular flavor. It is never stored.
	GenreAny     Genre = "any"
	GenreMystery Genre = "mystery"
	GenreFantasy Genre = "fantasy"
	GenreSciFi   Genre = "scifi"
	GenreHorror  Genre = "horror"
	GenreNoir    Genre = "noir"
	// GenreMixed is stored on prompts generated without a specific genre.
	GenreMixed Genre = "mixed"
)

// Genres lists the genres that can be requested, GenreAny first.
var Genres = []Genre{GenreAny, GenreMystery, GenreFantasy, GenreSciFi, GenreHorror, GenreNoir}

// genreAliases maps accepted spellings to genres.
var genreAliases = map[string]Genre{
	"any":             GenreAny,
	"mixed":           GenreAny,
	"mystery":         GenreMystery,
	"fantasy":         GenreFantasy,
	"scifi":           GenreSciFi,
	"sci-fi":          GenreSciFi,
	"science-fiction": GenreSciFi,
	"horror":          GenreHorror,
	"noir":            GenreNoir,
}

// ParseGenre converts free text into a Genre.
// Unrecognized input is treated as GenreAny.
func ParseGenre(s string) Genre {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "-")
	if g, ok := genreAliases[key]; ok {
		return g
	}
	return GenreAny
}

// IsSpecific reports whether g names a concrete flavor.
func (g Genre) IsSpecific() bool {
	switch g {
	case GenreMystery, GenreFantasy, GenreSciFi, GenreHorror, GenreNoir:
		return true
	}
	return false
}

// Stored returns the genre value written on a generated prompt.
func (g Genre) Stored() Genre {
	if g.IsSpecific() {
		return g
	}
	return GenreMixed
}

// Label returns a display label for the genre.
func (g Genre) Label() string {
	switch g {
	case GenreSciFi:
		return "Sci-Fi"
	case GenreAny, GenreMixed, "":
		return "Mixed"
	}
	s := string(g)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Prompt is a generated writing prompt.
//
// Keys it does not know are kept in Extra and written back unchanged, so
// entries saved by other tools survive a rewrite of the favorites file.
type Prompt struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Character string    `json:"character,omitempty"`
	Setting   string    `json:"setting,omitempty"`
	Conflict  string    `json:"conflict,omitempty"`
	Genre     Genre     `json:"genre,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
	SavedAt   Timestamp `json:"saved_at,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// promptKeys are the keys decoded into Prompt's own fields.
var promptKeys = []string{"id", "text", "character", "setting", "conflict", "genre", "created_at", "saved_at"}

type promptFields Prompt

// UnmarshalJSON implements json.Unmarshaler.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var fields promptFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range promptKeys {
		delete(raw, k)
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}
	*p = Prompt(fields)
	return nil
}

// MarshalJSON implements json.Marshaler. Extra keys never override known ones.
func (p Prompt) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(promptFields(p))
	if err != nil || len(p.Extra) == 0 {
		return data, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// IsSaved reports whether the prompt has been persisted to favorites.
func (p *Prompt) IsSaved() bool {
	return !p.SavedAt.IsZero()
}

// Clone returns a copy of the prompt.
func (p *Prompt) Clone() *Prompt {
	if p == nil {
		return nil
	}
	c := *p
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// Short returns the prompt text truncated to n runes.
func (p *Prompt) Short(n int) string {
	r := []rune(p.Text)
	if n <= 0 || len(r) <= n {
		return p.Text
	}
	return string(r[:n]) + "..."
}

// String implements fmt.Stringer.
func (p *Prompt) String() string {
	return fmt.Sprintf("%s [%s] %s", p.ID, p.Genre, p.Short(50))
}

// HistoryEntry is a generated prompt kept in the session history.
type HistoryEntry struct {
	Key    string  `json:"key"`
	Prompt *Prompt `json:"prompt"`
}

// SetKey sets the database key for this entry.
func (h *HistoryEntry) SetKey(key string) {
	h.Key = key
}

// GetKey returns the database key for this entry.
func (h *HistoryEntry) GetKey() string {
	return h.Key
}

// GenerateHistoryKey generates a database key for a history entry.
// Prompt ids are time ordered, so keys sort by generation time.
func GenerateHistoryKey(promptID string) string {
	return fmt.Sprintf("%s:%s", PrefixHistory, promptID)
}

// NewHistoryEntry wraps a prompt for the session history.
func NewHistoryEntry(p *Prompt) *HistoryEntry {
	return &HistoryEntry{
		Key:    GenerateHistoryKey(p.ID),
		Prompt: p,
	}
}

// CurrentPrompt holds the prompt the session is working with.
type CurrentPrompt struct {
	Key    string  `json:"key"`
	Prompt *Prompt `json:"prompt"`
}

// SetKey sets the database key.
func (c *CurrentPrompt) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key.
func (c *CurrentPrompt) GetKey() string {
	return c.Key
}
