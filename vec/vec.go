/*
Package vec provides the D-dimensional points and axis-aligned regions used
by the orthtree.

A region is described by an origin vector and an extent vector and covers
the half-open box [origin[i], origin[i]+extent[i]) on every axis i. The
half-open convention guarantees that the 2^D orthants of a subdivided region
tile it without overlap, so every point belongs to exactly one orthant.
*/
package vec

import (
	"math"
	"strconv"
	"strings"
)

// Vector is a point or extent in D-dimensional space. Its length is the
// dimension D.
type Vector []float64

// New creates a vector from its components.
func New(components ...float64) Vector {
	return Vector(components)
}

// Dim returns the dimension of the vector.
func (v Vector) Dim() int {
	return len(v)
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Equal reports componentwise equality. Vectors of different dimension are
// never equal; NaN components compare unequal as usual.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Ordered reports whether every component participates in a total order,
// i.e. no component is NaN. Points that are not ordered fail every
// containment test and are therefore contained by no region.
func (v Vector) Ordered() bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return false
		}
	}
	return true
}

// Finite reports whether every component is an ordinary finite number.
func (v Vector) Finite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Positive reports whether every component is strictly positive. Extents of
// valid regions are positive.
func (v Vector) Positive() bool {
	for _, x := range v {
		if !(x > 0) {
			return false
		}
	}
	return true
}

// String formats the vector in angle brackets, e.g. "<4, 12, 4>".
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i, x := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	sb.WriteByte('>')
	return sb.String()
}

// Contains reports whether point p lies inside the half-open region given
// by origin and extent:
//
//	p[i] >= origin[i]  &&  p[i] - origin[i] < extent[i]   for every axis i.
//
// Comparisons involving NaN evaluate to false, so a point with a NaN
// component is contained by no region. Infinite components fail one of the
// two comparisons and behave like any other out-of-bounds coordinate.
func Contains(origin, extent, p Vector) bool {
	for i := range origin {
		if !(p[i] >= origin[i]) {
			return false
		}
		if !(p[i]-origin[i] < extent[i]) {
			return false
		}
	}
	return true
}

// OrthantIndex returns the index of the orthant of the region that point p
// falls into: bit i of the result is set iff p lies in the upper half of
// axis i. The index is computed closed-form from the midpoints; it is
// well-defined for any ordered point, even one outside the region (the
// orthant is extended to infinity).
func OrthantIndex(origin, extent, p Vector) int {
	k := 0
	for i := range origin {
		if p[i]-origin[i] >= extent[i]/2 {
			k |= 1 << i
		}
	}
	return k
}

// Orthant returns the origin and extent of orthant k of the given region.
// The orthant's extent is half the region's on every axis; its origin is
// shifted by half the extent on axis i iff bit i of k is set.
func Orthant(origin, extent Vector, k int) (Vector, Vector) {
	subOrigin := make(Vector, len(origin))
	subExtent := make(Vector, len(extent))
	for i := range origin {
		subExtent[i] = extent[i] / 2
		subOrigin[i] = origin[i]
		if k&(1<<i) != 0 {
			subOrigin[i] += subExtent[i]
		}
	}
	return subOrigin, subExtent
}
