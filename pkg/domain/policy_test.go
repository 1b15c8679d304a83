package domain_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_First(t *testing.T) {
	a, b := domain.NewCell("a"), domain.NewCell("b")
	assert.Same(t, a, domain.First().Next([]*domain.Cell{a, b}))
}

func TestPolicy_RandomCoversCandidates(t *testing.T) {
	cells := []*domain.Cell{domain.NewCell("a"), domain.NewCell("b"), domain.NewCell("c")}
	p := domain.Random(rand.New(rand.NewPCG(3, 5)))

	seen := map[*domain.Cell]int{}
	for i := 0; i < 300; i++ {
		seen[p.Next(cells)]++
	}
	assert.Len(t, seen, len(cells))

	assert.Contains(t, cells, domain.Random(nil).Next(cells))
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", domain.PolicyFirst, domain.PolicyRandom} {
		p, err := domain.PolicyByName(name, nil)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := domain.PolicyByName("shortest", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}
