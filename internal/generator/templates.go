package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/manav03panchal/muse/internal/model"
)

// genericTemplate renders prompts for any/mixed or unrecognized genres.
const genericTemplate = "📖 %s %s, but %s."

// genreTemplates holds one template per concrete genre. Each takes
// character, setting and conflict in that order.
var genreTemplates = map[model.Genre]string{
	model.GenreMystery: "🔍 MYSTERY: %s %s, but %s. Every clue points to someone who should not exist.",
	model.GenreFantasy: "🧙 FANTASY: %s %s, but %s. An old prophecy has quietly started to come true.",
	model.GenreSciFi:   "🚀 SCI-FI: %s %s, but %s. The ship's log says this has happened before.",
	model.GenreHorror:  "👻 HORROR: %s %s, but %s. Something in the dark is counting down.",
	model.GenreNoir:    "🕵️ NOIR: %s %s, but %s. The rain never stops in this part of town.",
}

// Compose renders prompt text for the given parts and genre. The result
// depends only on its arguments.
func Compose(character, setting, conflict string, genre model.Genre) string {
	tmpl, ok := genreTemplates[genre]
	if !ok {
		tmpl = genericTemplate
	}
	return fmt.Sprintf(tmpl, capitalize(character), setting, conflict)
}

// NoPromptMessage is returned by Explain when there is nothing to explain.
const NoPromptMessage = "There's no prompt to explain yet. Generate one first and I'll tell you what hides inside it."

// explanationTemplates take the capitalized character, setting, topic and
// the character as written.
var explanationTemplates = []string{
	"At its heart this is a story about %[3]s. %[1]s carries that question, and placing them %[2]s makes it impossible to look away from.",
	"%[1]s is a mirror for the reader: the setting, %[2]s, strips away everything familiar until only %[3]s is left.",
	"Notice how the conflict turns on %[3]s. Put %[4]s %[2]s and every choice they make becomes a comment on what %[3]s really costs.",
	"The symbolism runs through %[3]s. The world %[2]s is an outward picture of what %[4]s cannot say out loud.",
}

// fallbackTopic is used when no topic word can be pulled from a conflict.
const fallbackTopic = "the unknown"

// Topic pulls a trailing topic word out of a conflict phrase. It splits on
// whitespace and keeps the last token with surrounding punctuation trimmed,
// falling back to a generic word when nothing usable remains.
func Topic(conflict string) string {
	fields := strings.Fields(conflict)
	if len(fields) == 0 {
		return fallbackTopic
	}
	last := strings.TrimFunc(fields[len(fields)-1], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if last == "" {
		return fallbackTopic
	}
	return last
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
