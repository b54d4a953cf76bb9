// ABOUTME: ClientIdentity names a client by internal key and optional social handle.
// ABOUTME: Historical sessions are tagged with either field, so lookups match both.
package models

import "strings"

// ClientIdentity identifies a client whose sessions may be tagged with either
// the internal client key or the Instagram handle.
//
// Matching on two columns is a leftover of inconsistently tagged historical
// data; once sessions are backfilled with client keys the alias can go.
type ClientIdentity struct {
	Key   string `json:"key"`
	Alias string `json:"alias,omitempty"`
}

// NewClientIdentity builds an identity. Values are trimmed but case is kept,
// matching is case-sensitive.
func NewClientIdentity(key, alias string) ClientIdentity {
	return ClientIdentity{Key: strings.TrimSpace(key), Alias: strings.TrimSpace(alias)}
}

// Handle returns the value matched against the ig_username column.
// Without an alias the key itself is used, as legacy rows sometimes
// stored the client key in the handle column.
func (c ClientIdentity) Handle() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Key
}

// IsZero reports whether no identity was given.
func (c ClientIdentity) IsZero() bool {
	return c.Key == "" && c.Alias == ""
}

// Matches reports whether a session belongs to this identity.
func (c ClientIdentity) Matches(s *Session) bool {
	return (c.Key != "" && s.ClientKey == c.Key) || (c.Handle() != "" && s.IGUsername == c.Handle())
}

func (c ClientIdentity) String() string {
	if c.Alias == "" || c.Alias == c.Key {
		return c.Key
	}
	if c.Key == "" {
		return "@" + c.Alias
	}
	return c.Key + " (@" + c.Alias + ")"
}
