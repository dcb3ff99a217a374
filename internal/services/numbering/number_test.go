package numbering

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{5}$`)
	g := RandomGenerator{}
	for i := 0; i < 200; i++ {
		assert.Regexp(t, pattern, g.Next())
	}
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("INV-00001", "INV-00002")
	assert.Equal(t, "INV-00001", g.Next())
	assert.Equal(t, "INV-00002", g.Next())
	assert.Equal(t, "INV-00002", g.Next())
}

func TestSequenceGenerator_Empty(t *testing.T) {
	assert.Equal(t, "INV-00000", NewSequenceGenerator().Next())
}
