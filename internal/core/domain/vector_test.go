package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVector_SortsAndDropsZeros(t *testing.T) {
	v := NewVector(map[int]float64{7: 0.5, 2: 0.25, 4: 0})

	assert.Equal(t, []int{2, 7}, v.Indices)
	assert.Equal(t, []float64{0.25, 0.5}, v.Values)
	assert.Equal(t, 2, v.NNZ())
	assert.False(t, v.IsZero())
}

func TestVector_ZeroValue(t *testing.T) {
	var v Vector

	assert.True(t, v.IsZero())
	assert.Equal(t, 0.0, v.Norm())
	assert.Equal(t, 0.0, v.Dot(NewVector(map[int]float64{1: 1})))
	assert.True(t, v.Normalize().IsZero())
}

func TestVector_Dot(t *testing.T) {
	a := NewVector(map[int]float64{0: 1, 3: 2, 5: 3})
	b := NewVector(map[int]float64{3: 4, 4: 9, 5: 1})

	assert.InDelta(t, 11.0, a.Dot(b), 1e-12)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
}

func TestVector_Normalize(t *testing.T) {
	v := NewVector(map[int]float64{1: 3, 2: 4}).Normalize()

	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, v.Values[0], 1e-12)
	assert.InDelta(t, 0.8, v.Values[1], 1e-12)
}

func TestVector_DotDeterministic(t *testing.T) {
	weights := map[int]float64{}
	for i := 0; i < 200; i++ {
		weights[i*3] = math.Sqrt(float64(i + 1))
	}
	a := NewVector(weights)
	b := NewVector(weights)

	first := a.Dot(b)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NewVector(weights).Dot(b))
	}
}
