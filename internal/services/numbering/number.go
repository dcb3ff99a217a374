package numbering

import (
	"fmt"
	"math/rand"
)

// Prefix starts every display number.
const Prefix = "INV-"

// Generator produces display numbers for new invoices. Implementations need
// not guarantee uniqueness; callers check against existing records.
type Generator interface {
	Next() string
}

// RandomGenerator yields INV- followed by five random digits.
type RandomGenerator struct{}

func (RandomGenerator) Next() string {
	return fmt.Sprintf("%s%05d", Prefix, rand.Intn(100000))
}

// SequenceGenerator replays a fixed list of numbers and then repeats the
// last one. It is meant for tests and demos.
type SequenceGenerator struct {
	numbers []string
	pos     int
}

func NewSequenceGenerator(numbers ...string) *SequenceGenerator {
	return &SequenceGenerator{numbers: numbers}
}

func (g *SequenceGenerator) Next() string {
	if len(g.numbers) == 0 {
		return Prefix + "00000"
	}
	n := g.numbers[g.pos]
	if g.pos < len(g.numbers)-1 {
		g.pos++
	}
	return n
}
