// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAndNot(t *testing.T) {
	tc := []struct {
		name   string
		c1     *container
		c2     *container
		result []uint32
	}{
		{"empty", newArr(), newArr(), []uint32{}},
		{"arr \\ arr identical", newArr(1, 2, 3), newArr(1, 2, 3), []uint32{}},
		{"bmp \\ bmp identical", newBmp(1, 2, 3), newBmp(1, 2, 3), []uint32{}},
		{"run \\ run identical", newRun(1, 2, 3), newRun(1, 2, 3), []uint32{}},

		{"disjoint", newArr(1, 2, 3), newArr(4, 5, 6), []uint32{1, 2, 3}},
		{"arr \\ bmp overlap", newArr(1, 2, 3, 4), newBmp(3, 4, 5), []uint32{1, 2}},
		{"arr \\ run overlap", newArr(1, 2, 3, 4, 5), newRun(3, 4), []uint32{1, 2, 5}},
		{"bmp \\ run overlap", newBmp(1, 2, 3, 4, 5), newRun(3, 4), []uint32{1, 2, 5}},
		{"run \\ arr overlap", newRun(1, 2, 3, 4, 5), newArr(3, 4), []uint32{1, 2, 5}},
		{"run \\ bmp overlap", newRun(1, 2, 3, 4, 5), newBmp(3, 4), []uint32{1, 2, 5}},
		{"run \\ run overlap spanning", newRun(1, 2, 3, 4, 5, 6, 7, 8), newRun(3, 4, 5, 6), []uint32{1, 2, 7, 8}},

		{"andnot empty is noop", newArr(1, 2, 3), newArr(), []uint32{1, 2, 3}},
		{"empty left", newArr(), newArr(1, 2, 3), []uint32{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			a := bitmapWith(tt.c1)
			b := bitmapWith(tt.c2)
			bv := valuesOf(b)

			a.AndNot(b)

			assert.Equal(t, tt.result, valuesOf(a))
			assert.Equal(t, bv, valuesOf(b))
		})
	}
}

// TestAndNotSelfIsEmpty is property S4: andnot_inplace(a, a) empties a and
// drops every bucket from its directory.
func TestAndNotSelfIsEmpty(t *testing.T) {
	a := bitmapFrom([]uint32{1, 2, 3})
	a.AndNot(a)

	assert.Zero(t, a.Cardinality())
	assert.Equal(t, 0, a.dir.size())
}

// TestAndNotEmptyIsIdentity is property §8.3: andnot(a, empty) = a.
func TestAndNotEmptyIsIdentity(t *testing.T) {
	a := bitmapFrom(genRand(500, 20000))
	want := a.ToArray()

	a.AndNot(New())
	assert.Equal(t, want, a.ToArray())
}

func TestAndNotInPlaceEquivalence(t *testing.T) {
	a := bitmapFrom(genRand(400, 8000))
	b := bitmapFrom(genRand(400, 8000))

	want := AndNot(a, b)

	got := a.Clone(nil)
	got.AndNot(b)

	assert.Equal(t, want.ToArray(), got.ToArray())
}

func TestAndNotLargeSelfOnDenseBitset(t *testing.T) {
	a := New()
	for i := uint32(0); i < 20000; i++ {
		a.Set(i)
	}
	a.AndNot(a)
	assert.Zero(t, a.Cardinality())
}
