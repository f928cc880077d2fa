// Package objectkey provides object key derivation strategies for upload
// authorizations.
package objectkey

import (
	"fmt"
	"time"
)

// Generator defines the interface for object key derivation strategies.
type Generator interface {
	// GenerateKey derives the storage key for a file authorized at the
	// given instant. The instant is the server's authorization time, never
	// client-supplied.
	GenerateKey(filename string, authorizedAt time.Time) string
}

// TimestampGenerator derives keys of the form
// {prefix}/{YYYY}/{MM}/{DD}/{HHMMSS}/{filename} in UTC.
//
// Uniqueness is best-effort: two uploads of the same filename within the
// same second collide. The second-granularity format is kept for
// compatibility with existing stored keys; callers that need stronger
// guarantees should use a CustomFuncGenerator.
type TimestampGenerator struct {
	// Prefix is the leading path segment (default "uploads").
	Prefix string
}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{Prefix: "uploads"}
}

func (g *TimestampGenerator) GenerateKey(filename string, authorizedAt time.Time) string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = "uploads"
	}
	return fmt.Sprintf("%s/%s/%s", prefix, authorizedAt.UTC().Format("2006/01/02/150405"), filename)
}

// CustomFuncGenerator allows users to provide their own key derivation
// function.
type CustomFuncGenerator struct {
	GenerateFunc func(filename string, authorizedAt time.Time) string
}

func NewCustomFuncGenerator(fn func(filename string, authorizedAt time.Time) string) *CustomFuncGenerator {
	return &CustomFuncGenerator{GenerateFunc: fn}
}

func (g *CustomFuncGenerator) GenerateKey(filename string, authorizedAt time.Time) string {
	return g.GenerateFunc(filename, authorizedAt)
}
