// Package certid generates certificate identifiers.
//
// An identifier is the issuance timestamp encoded as yyyyMMddHHmmss, the
// millisecond zero-padded to three digits, and a two-digit random decimal
// suffix: 19 digits total. Uniqueness is therefore high but not guaranteed
// (two calls within the same millisecond collide with probability 1/100);
// the ledger enforces uniqueness at creation time on top of this.
package certid

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Generator produces identifiers. RandInt must return a value in [0, n);
// it is a field so tests can pin the suffix.
type Generator struct {
	RandInt func(n int) int
}

// NewGenerator returns a Generator backed by math/rand.
func NewGenerator() *Generator {
	return &Generator{RandInt: rand.IntN}
}

// New returns the identifier for the given timestamp.
func (g *Generator) New(now time.Time) string {
	return fmt.Sprintf("%04d%02d%02d%02d%02d%02d%03d%02d",
		now.Year(), int(now.Month()), now.Day(),
		now.Hour(), now.Minute(), now.Second(),
		now.Nanosecond()/1e6,
		g.RandInt(100))
}
