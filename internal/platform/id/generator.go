package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered UUIDv7 identifiers, optionally prefixed
// so player ids read like the seeded "rl-thor-1" slugs.
type UUIDGenerator struct {
	prefix string
}

type Option func(*UUIDGenerator)

// WithPrefix joins prefix and the uuid with a dash.
func WithPrefix(prefix string) Option {
	return func(g *UUIDGenerator) {
		g.prefix = strings.Trim(strings.TrimSpace(prefix), "-")
	}
}

func NewUUIDGenerator(opts ...Option) *UUIDGenerator {
	g := &UUIDGenerator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	if g.prefix == "" {
		return v.String(), nil
	}
	return g.prefix + "-" + v.String(), nil
}
