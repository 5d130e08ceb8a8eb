package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Genre Tests
// =============================================================================

func TestParseGenre(t *testing.T) {
	tests := []struct {
		in   string
		want Genre
	}{
		{"mystery", GenreMystery},
		{"  Fantasy ", GenreFantasy},
		{"sci-fi", GenreSciFi},
		{"science fiction", GenreSciFi},
		{"SCIFI", GenreSciFi},
		{"horror", GenreHorror},
		{"noir", GenreNoir},
		{"mixed", GenreAny},
		{"", GenreAny},
		{"romance", GenreAny},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGenre(tt.in))
		})
	}
}

func TestGenreStoredAndLabel(t *testing.T) {
	assert.True(t, GenreNoir.IsSpecific())
	assert.False(t, GenreAny.IsSpecific())
	assert.False(t, GenreMixed.IsSpecific())

	assert.Equal(t, GenreNoir, GenreNoir.Stored())
	assert.Equal(t, GenreMixed, GenreAny.Stored())

	assert.Equal(t, "Sci-Fi", GenreSciFi.Label())
	assert.Equal(t, "Mystery", GenreMystery.Label())
	assert.Equal(t, "Mixed", GenreAny.Label())
	assert.Equal(t, "Mixed", Genre("").Label())
}

func TestGenresStartWithAny(t *testing.T) {
	require.NotEmpty(t, Genres)
	assert.Equal(t, GenreAny, Genres[0])
	for _, g := range Genres[1:] {
		assert.True(t, g.IsSpecific(), string(g))
	}
}

// =============================================================================
// Prompt Tests
// =============================================================================

func TestPromptCloneAndSaved(t *testing.T) {
	p := &Prompt{ID: "a", Text: "A thief in a lighthouse must decide.", Genre: GenreNoir}
	assert.False(t, p.IsSaved())

	c := p.Clone()
	c.SavedAt = NewTimestamp(time.Now())
	assert.True(t, c.IsSaved())
	assert.False(t, p.IsSaved())

	var nilPrompt *Prompt
	assert.Nil(t, nilPrompt.Clone())
}

func TestPromptJSONKeepsUnknownKeys(t *testing.T) {
	in := `{"id":"1700000000.5","text":"old","time":"10:00","date":"2024-01-01","saved_at":"2024-01-01 10:00:00.000001"}`

	var p Prompt
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, "old", p.Text)
	assert.Equal(t, json.RawMessage(`"10:00"`), p.Extra["time"])
	assert.NotContains(t, p.Extra, "text")

	out, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	c := p.Clone()
	c.Extra["time"] = json.RawMessage(`"11:00"`)
	assert.Equal(t, json.RawMessage(`"10:00"`), p.Extra["time"])
}

func TestPromptJSONKnownKeysWin(t *testing.T) {
	p := Prompt{ID: "a", Text: "kept", Extra: map[string]json.RawMessage{"text": json.RawMessage(`"dropped"`)}}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","text":"kept"}`, string(out))

	var plain Prompt
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","text":"t"}`), &plain))
	assert.Nil(t, plain.Extra)
}

func TestPromptShort(t *testing.T) {
	p := &Prompt{ID: "id1", Text: "héllo world", Genre: GenreMixed}
	assert.Equal(t, "héllo...", p.Short(5))
	assert.Equal(t, "héllo world", p.Short(0))
	assert.Equal(t, "héllo world", p.Short(100))
	assert.Equal(t, "id1 [mixed] héllo world", p.String())
}

func TestHistoryEntry(t *testing.T) {
	p := &Prompt{ID: "0190"}
	e := NewHistoryEntry(p)
	assert.Equal(t, "history:0190", e.GetKey())
	assert.Same(t, p, e.Prompt)

	e.SetKey("other")
	assert.Equal(t, "other", e.Key)
}

// =============================================================================
// Timestamp Tests
// =============================================================================

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 123456000, time.Local)
	ts := NewTimestamp(now)
	assert.Equal(t, "2024-05-15 14:30:00.123456", ts.String())

	got, ok := ts.Time()
	require.True(t, ok)
	assert.True(t, now.Equal(got))
}

func TestTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-05-15 14:30:00",
		"2024-05-15T14:30:00Z",
		"2024-05-15T14:30:00.000000",
		"2024-05-15",
	} {
		_, ok := Timestamp(s).Time()
		assert.True(t, ok, s)
	}

	_, ok := Timestamp("yesterday-ish").Time()
	assert.False(t, ok)

	assert.True(t, Timestamp("  ").IsZero())
	_, ok = Timestamp("").Time()
	assert.False(t, ok)
}

// =============================================================================
// Conversation Tests
// =============================================================================

func TestConversationClone(t *testing.T) {
	conv := NewConversation()
	assert.Equal(t, KeyConversation, conv.GetKey())

	conv.Current = &Prompt{ID: "p1", Text: "x"}
	conv.Messages = append(conv.Messages,
		Message{Role: RoleUser, Content: "prompt"},
		Message{Role: RoleAssistant, Content: "x", Kind: MessagePrompt, PromptID: "p1"},
	)

	c := conv.Clone()
	c.Messages[0].Content = "changed"
	c.Current.Text = "changed"
	assert.Equal(t, "prompt", conv.Messages[0].Content)
	assert.Equal(t, "x", conv.Current.Text)
	assert.Equal(t, 1, c.PromptCount())

	var nilConv *Conversation
	assert.Empty(t, nilConv.Clone().Messages)
}
