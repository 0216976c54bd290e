// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd(t *testing.T) {
	tc := []struct {
		name   string
		c1     *container
		c2     *container
		result []uint32
	}{
		{"empty", newArr(), newArr(), []uint32{}},
		{"arr ∧ arr", newArr(1, 2, 3), newArr(1, 2, 3), []uint32{1, 2, 3}},
		{"arr ∧ bmp", newArr(1, 2, 3), newBmp(1, 2, 3), []uint32{1, 2, 3}},
		{"arr ∧ run", newArr(1, 2, 3), newRun(1, 2, 3), []uint32{1, 2, 3}},
		{"bmp ∧ arr", newBmp(1, 2, 3), newArr(1, 2, 3), []uint32{1, 2, 3}},
		{"bmp ∧ bmp", newBmp(1, 2, 3), newBmp(1, 2, 3), []uint32{1, 2, 3}},
		{"bmp ∧ run", newBmp(1, 2, 3), newRun(1, 2, 3), []uint32{1, 2, 3}},
		{"run ∧ arr", newRun(1, 2, 3), newArr(1, 2, 3), []uint32{1, 2, 3}},
		{"run ∧ bmp", newRun(1, 2, 3), newBmp(1, 2, 3), []uint32{1, 2, 3}},
		{"run ∧ run", newRun(1, 2, 3), newRun(1, 2, 3), []uint32{1, 2, 3}},

		{"disjoint", newArr(1, 2, 3), newArr(4, 5, 6), []uint32{}},
		{"partial overlap", newArr(1, 2, 3, 4), newBmp(3, 4, 5, 6), []uint32{3, 4}},
		{"run ∧ arr partial", newRun(1, 2, 3, 4, 5), newArr(3, 4, 100), []uint32{3, 4}},
		{"one side empty", newArr(1, 2, 3), newArr(), []uint32{}},
		{"boundary", newArr(0, 1, 65535), newRun(0, 65535), []uint32{0, 65535}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			a := bitmapWith(tt.c1)
			b := bitmapWith(tt.c2)
			bv := valuesOf(b)

			a.And(b)

			assert.Equal(t, tt.result, valuesOf(a))
			assert.Equal(t, bv, valuesOf(b))
		})
	}
}

func TestAndMultiBucket(t *testing.T) {
	a := bitmapFrom([]uint32{0, 65536, 131072})
	b := bitmapFrom([]uint32{65536, 131072, 196608})

	a.And(b)
	assert.Equal(t, []uint32{65536, 131072}, valuesOf(a))
}

func TestAndSelf(t *testing.T) {
	a := bitmapFrom(genSeq(1000, 0))
	a.And(a)
	assert.Equal(t, genSeq(1000, 0), valuesOf(a))
}

func TestAndIdempotent(t *testing.T) {
	a := bitmapFrom(genRand(500, 10000))
	b := a.Clone(nil)
	a.And(b)
	assert.Equal(t, valuesOf(b), valuesOf(a))
}

// TestAndBitsetIntersectionScenario is property S2: a={2i: 0<=i<45000},
// b={3i: 0<=i<30000}; both sides exceed the array threshold and are stored
// as bitsets. The intersection {6i: 0<=i<15000} has cardinality 15000, which
// still exceeds DefaultMaxSize, so the result representation (array or
// bitset) is a policy choice, but the member set itself is exact.
func TestAndBitsetIntersectionScenario(t *testing.T) {
	a, b := New(), New()
	for i := uint32(0); i < 45000; i++ {
		a.Set(2 * i)
		if i < 30000 {
			b.Set(3 * i)
		}
	}
	assert.Equal(t, typeBitset, a.dir.getAt(0).Type)
	assert.Equal(t, typeBitset, b.dir.getAt(0).Type)

	a.And(b)

	want := make([]uint32, 15000)
	for i := range want {
		want[i] = 6 * uint32(i)
	}
	assert.Equal(t, want, a.ToArray())
	assert.EqualValues(t, 15000, a.Cardinality())
}

// TestAndBitsetIntersectionBelowThresholdBecomesArray covers the companion
// case of the same density rule: an intersection that falls at or below
// DefaultMaxSize is stored as an array rather than a sparse bitset.
func TestAndBitsetIntersectionBelowThresholdBecomesArray(t *testing.T) {
	a, b := New(), New()
	for i := uint32(0); i < 20000; i++ {
		a.Set(i)
	}
	for i := uint32(0); i < 100; i++ {
		b.Set(i * 100)
	}
	assert.Equal(t, typeBitset, a.dir.getAt(0).Type)

	a.And(b)

	assert.Equal(t, typeArray, a.dir.getAt(0).Type)
	assert.EqualValues(t, 100, a.Cardinality())
}

func TestAndCommutative(t *testing.T) {
	a := bitmapFrom(genRand(300, 5000))
	b := bitmapFrom(genRand(300, 5000))

	ab := a.Clone(nil)
	ab.And(b)

	ba := b.Clone(nil)
	ba.And(a)

	assert.Equal(t, valuesOf(ab), valuesOf(ba))
}
