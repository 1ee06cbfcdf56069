package domain

import (
	"math"
	"sort"
)

// Vector is a sparse term-weight vector.
// Indices are strictly ascending; Values[i] is the weight of term Indices[i].
// Dimensions not listed are zero.
type Vector struct {
	Indices []int
	Values  []float64
}

// NewVector builds a Vector from a term-index to weight map.
// Zero weights are dropped and indices are sorted so that the
// result is independent of map iteration order.
func NewVector(weights map[int]float64) Vector {
	idx := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	v := Vector{
		Indices: idx,
		Values:  make([]float64, len(idx)),
	}
	for n, i := range idx {
		v.Values[n] = weights[i]
	}
	return v
}

// NNZ returns the number of non-zero entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of v and o.
// Both index lists are walked in ascending order, so the summation
// order, and therefore the result, is deterministic.
func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Normalize returns a copy of v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	n := v.Norm()
	out := Vector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	for i, x := range v.Values {
		if n > 0 {
			out.Values[i] = x / n
		} else {
			out.Values[i] = x
		}
	}
	return out
}
