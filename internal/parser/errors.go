package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/muse/internal/errors"
)

// ParseError is an argument parsing error with helpful examples.
type ParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// FormatWithExamples returns the error message with example suggestions.
func (e *ParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// SinceExamples provides example --since expressions.
var SinceExamples = []string{
	"today",
	"yesterday",
	"this week",
	"last month",
	"3 days ago",
	"2024-01-15",
}

// NewSinceError creates a --since parse error with standard examples.
func NewSinceError(input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "since",
		Message:    "could not parse time",
		Examples:   SinceExamples,
		Suggestion: "Try natural language like 'yesterday', '3 days ago', or 'this week'.",
	}
}

// NewGenreError creates an unknown genre error listing the accepted names.
func NewGenreError(input string, genres []string) *ParseError {
	return &ParseError{
		Input:    input,
		Field:    "genre",
		Message:  "unknown genre",
		Examples: genres,
	}
}

// ToUserError converts a ParseError to a UserError for consistent handling.
func (e *ParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}
