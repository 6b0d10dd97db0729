package estimator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/internal/estimator"
)

func TestNewRussianRouletteCarriesContinuationProbability(t *testing.T) {
	s := estimator.NewRussianRoulette(0.7)
	assert.Equal(t, estimator.RussianRoulette, s.Kind)
	assert.InDelta(t, 0.7, s.P, 1e-9)
}

func TestNewMaximumBouncesCarriesBounceCap(t *testing.T) {
	s := estimator.NewMaximumBounces(8)
	assert.Equal(t, estimator.MaximumBounces, s.Kind)
	assert.Equal(t, 8, s.N)
}
