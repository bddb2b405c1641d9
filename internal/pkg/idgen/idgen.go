// Package idgen mints story and preview session identifiers. Ids have the
// form "{prefix}_{token}" so the kind of an id can be read back with Prefix.
package idgen

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-story/internal/pkg/idgen Generator

// ID prefixes
const (
	PrefixStory   = "story"
	PrefixPreview = "preview"
)

const separator = "_"

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// prefixed joins a fixed prefix onto tokens from next
type prefixed struct {
	prefix string
	next   func() string
}

// Generate implements Generator
func (g *prefixed) Generate() string {
	return Join(g.prefix, g.next())
}

// NewUUID returns a generator of random v4 UUID tokens
func NewUUID(prefix string) Generator {
	return &prefixed{prefix: prefix, next: func() string { return uuid.NewString() }}
}

// NewSequential returns a generator counting up from 1, for tests and fixtures
func NewSequential(prefix string) Generator {
	var counter uint64
	return &prefixed{prefix: prefix, next: func() string {
		return strconv.FormatUint(atomic.AddUint64(&counter, 1), 10)
	}}
}

// Join builds an id from a prefix and token; an empty prefix yields the token
func Join(prefix, token string) string {
	if prefix == "" {
		return token
	}
	return prefix + separator + token
}

// Prefix returns the prefix of id, or "" when it has none
func Prefix(id string) string {
	prefix, _, ok := strings.Cut(id, separator)
	if !ok {
		return ""
	}
	return prefix
}

// HasPrefix reports whether id was minted under prefix
func HasPrefix(id, prefix string) bool {
	return Prefix(id) == prefix
}
