package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/worldsim-core/internal/rng"
)

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := rng.New(1)
	b := rng.New(2)
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestFloat64IsInUnitRange(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestIntNRespectsBound(t *testing.T) {
	s := rng.New(123)
	for i := 0; i < 1000; i++ {
		v := s.IntN(10)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
	assert.Equal(t, 0, s.IntN(0))
}

func TestForkDoesNotAdvanceParentSequence(t *testing.T) {
	parent := rng.New(99)
	next := parent.Uint64()

	parentAgain := rng.New(99)
	parentAgain.Fork("child-a")
	assert.Equal(t, next, parentAgain.Uint64())
}

func TestForkIsDeterministicPerLabel(t *testing.T) {
	a := rng.New(5).Fork("settlement")
	b := rng.New(5).Fork("settlement")
	assert.Equal(t, a.Uint64(), b.Uint64())
}

func TestForkDivergesByLabel(t *testing.T) {
	parent := rng.New(5)
	childA := parent.Fork("a")
	childB := parent.Fork("b")
	assert.NotEqual(t, childA.Uint64(), childB.Uint64())
}

func TestSimplex2DIsDeterministicFromSameSource(t *testing.T) {
	a := rng.NewSimplex2D(rng.New(10).Fork("terrain"))
	b := rng.NewSimplex2D(rng.New(10).Fork("terrain"))
	assert.Equal(t, a.At(1.5, 2.5), b.At(1.5, 2.5))
}

func TestSimplex2DStaysInExpectedRange(t *testing.T) {
	n := rng.NewSimplex2D(rng.New(1))
	for i := 0; i < 200; i++ {
		v := n.At(float64(i)*0.1, float64(i)*0.37)
		assert.GreaterOrEqual(t, v, -1.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}
