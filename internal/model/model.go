// Package model defines the domain models for Muse.
package model

// Model is the interface implemented by values kept in the session database.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Key prefixes and fixed keys for the session database.
const (
	PrefixHistory   = "history"
	KeyCurrent      = "current"
	KeyConversation = "conversation"
)
