// Package chat is the conversational front end of the muse: it classifies
// free text into intents and answers them with prompts, twists and
// explanations.
package chat

import (
	"strings"
	"unicode"

	"github.com/manav03panchal/muse/internal/model"
)

// Intent is what a chat message asks for.
type Intent string

const (
	IntentQuit         Intent = "quit"
	IntentGreet        Intent = "greet"
	IntentGenerate     Intent = "generate"
	IntentTwist        Intent = "twist"
	IntentExplain      Intent = "explain"
	IntentSave         Intent = "save"
	IntentClear        Intent = "clear"
	IntentHelp         Intent = "help"
	IntentConversation Intent = "conversation"
)

// intentKeywords is checked in order; the first intent with a matching
// word wins.
var intentKeywords = []struct {
	intent Intent
	words  []string
}{
	{IntentQuit, []string{"quit", "exit", "bye", "goodbye"}},
	{IntentGreet, []string{"hello", "hi", "hey"}},
	{IntentGenerate, []string{"prompt", "prompts", "idea", "ideas", "story", "stories", "generate"}},
	{IntentTwist, []string{"twist", "twists"}},
	{IntentExplain, []string{"explain", "meaning", "symbolism"}},
	{IntentSave, []string{"save", "favorite", "favourite"}},
	{IntentClear, []string{"clear", "reset"}},
	{IntentHelp, []string{"help", "commands"}},
}

// Mood colors conversational replies.
type Mood string

const (
	MoodHappy         Mood = "happy"
	MoodSad           Mood = "sad"
	MoodCreative      Mood = "creative"
	MoodContemplative Mood = "contemplative"
)

var moodKeywords = []struct {
	mood  Mood
	words []string
}{
	{MoodHappy, []string{"happy", "good", "great"}},
	{MoodSad, []string{"sad", "bad", "tired"}},
	{MoodCreative, []string{"write", "create", "story"}},
}

// genreOrder is the order genres are looked for in a message.
var genreOrder = []model.Genre{
	model.GenreMystery,
	model.GenreFantasy,
	model.GenreSciFi,
	model.GenreHorror,
	model.GenreNoir,
}

// words lowercases input and splits it into words. "sci-fi" and "sci fi"
// come out as the single word "scifi".
func words(input string) []string {
	s := strings.ToLower(input)
	s = strings.ReplaceAll(s, "sci-fi", "scifi")
	s = strings.ReplaceAll(s, "sci fi", "scifi")
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func containsAny(tokens []string, candidates []string) bool {
	for _, tok := range tokens {
		for _, c := range candidates {
			if tok == c {
				return true
			}
		}
	}
	return false
}

// Classify returns the intent of a chat message. Keywords only match whole
// words, so "this" is not a greeting.
func Classify(input string) Intent {
	tokens := words(input)
	for _, ik := range intentKeywords {
		if containsAny(tokens, ik.words) {
			return ik.intent
		}
	}
	return IntentConversation
}

// ExtractGenre returns the first genre named in input, or GenreAny.
func ExtractGenre(input string) model.Genre {
	tokens := words(input)
	for _, g := range genreOrder {
		if containsAny(tokens, []string{string(g)}) {
			return g
		}
	}
	return model.GenreAny
}

// DetectMood guesses the mood of a message.
func DetectMood(input string) Mood {
	tokens := words(input)
	for _, mk := range moodKeywords {
		if containsAny(tokens, mk.words) {
			return mk.mood
		}
	}
	return MoodContemplative
}
