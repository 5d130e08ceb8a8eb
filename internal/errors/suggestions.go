package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrNoCurrentPrompt:  "Generate one first with 'muse prompt'.",
	ErrPromptNotFound:   "Use 'muse history' or 'muse favorites' to see available prompt ids.",
	ErrInvalidFormat:    "Supported formats are 'json' and 'text'.",
	ErrInvalidGenre:     "Choose one of: any, mystery, fantasy, scifi, horror, noir.",
	ErrInvalidTimestamp: "Try formats like 'yesterday', 'last week', '3 days ago', or '2024-05-01'.",

	// Configuration errors
	ErrEmptyPool: "Every phrase pool needs at least one entry. Check the pools file named in your config.",

	// System errors
	ErrDiskFull:         "Free up disk space and try again. The favorites file was left unchanged.",
	ErrCorruptedStore:   "The favorites file could not be parsed. Restore it from a backup or move it aside to start fresh.",
	ErrPermissionDenied: "Check file permissions in your data directory (~/.local/share/muse/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrNoCurrentPrompt: {
		"muse prompt",
		"muse prompt mystery",
	},
	ErrInvalidGenre: {
		"muse prompt fantasy",
		"muse favorites list --genre noir",
	},
	ErrInvalidTimestamp: {
		"muse favorites list --since yesterday",
		"muse favorites list --since 'last month'",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
