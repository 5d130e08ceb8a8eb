// Package validate checks and cleans user input before it reaches the
// favorites store, the session database or the chat engine.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/manav03panchal/muse/internal/errors"
)

const (
	// MaxIDLength is the maximum length for a prompt id.
	MaxIDLength = 64
	// MaxMessageLength is the maximum length for a chat message, in runes.
	MaxMessageLength = 2000
	// MaxLimit caps list limits.
	MaxLimit = 10000
)

// idRegex matches uuids and other ids made of letters, digits and dashes.
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// PromptID validates a prompt id given on the command line.
func PromptID(id string) error {
	if id == "" {
		return errors.NewUserError("prompt id cannot be empty", "Run 'muse history' to see prompt ids")
	}
	if len(id) > MaxIDLength {
		return errors.NewUserErrorWithField("id", id,
			"prompt id too long",
			fmt.Sprintf("Prompt ids are %d characters or fewer", MaxIDLength))
	}
	if !idRegex.MatchString(id) {
		return errors.NewUserErrorWithField("id", id,
			"invalid prompt id",
			"Prompt ids contain only letters, numbers and dashes")
	}
	return nil
}

// Message validates a cleaned chat message.
func Message(msg string) error {
	if msg == "" {
		return errors.NewUserError("message is empty", "Try: muse say hello")
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return errors.NewUserError(
			"message too long",
			fmt.Sprintf("Messages must be %d characters or fewer", MaxMessageLength))
	}
	return nil
}

// OutputPath validates a file path to write to.
func OutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewUserError("output path cannot be empty", "Omit -o to print to stdout")
	}
	if strings.ContainsRune(path, 0) {
		return errors.NewUserErrorWithField("output", path, "invalid output path", "Remove the null byte from the path")
	}
	return nil
}

// Limit validates a list limit where 0 means no limit.
func Limit(field string, n int) error {
	if n < 0 || n > MaxLimit {
		return errors.NewUserErrorWithField(field, fmt.Sprint(n),
			"value out of range",
			fmt.Sprintf("Use a number between 0 and %d (0 shows everything)", MaxLimit))
	}
	return nil
}

// SanitizeMessage trims a chat message, folds line breaks and tabs into
// spaces and drops other control characters.
func SanitizeMessage(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			sb.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
