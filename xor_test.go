// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXor(t *testing.T) {
	tc := []struct {
		name   string
		c1     *container
		c2     *container
		result []uint32
	}{
		{"empty", newArr(), newArr(), []uint32{}},
		{"arr ⊕ arr identical", newArr(1, 2, 3), newArr(1, 2, 3), []uint32{}},
		{"bmp ⊕ bmp identical", newBmp(1, 2, 3), newBmp(1, 2, 3), []uint32{}},
		{"run ⊕ run identical", newRun(1, 2, 3), newRun(1, 2, 3), []uint32{}},

		{"arr ⊕ arr disjoint", newArr(1, 2, 3), newArr(4, 5, 6), []uint32{1, 2, 3, 4, 5, 6}},
		{"arr ⊕ bmp disjoint", newArr(1, 2, 3), newBmp(4, 5, 6), []uint32{1, 2, 3, 4, 5, 6}},
		{"arr ⊕ run disjoint", newArr(1, 2, 3), newRun(4, 5, 6), []uint32{1, 2, 3, 4, 5, 6}},
		{"bmp ⊕ run disjoint", newBmp(1, 2, 3), newRun(4, 5, 6), []uint32{1, 2, 3, 4, 5, 6}},
		{"run ⊕ bmp disjoint", newRun(1, 2, 3), newBmp(4, 5, 6), []uint32{1, 2, 3, 4, 5, 6}},

		{"arr ⊕ arr overlap", newArr(1, 2, 3, 4), newArr(3, 4, 5, 6), []uint32{1, 2, 5, 6}},
		{"arr ⊕ run overlap interleaved", newArr(1, 10, 20), newRun(5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15), []uint32{1, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 20}},
		{"run ⊕ run overlap", newRun(1, 2, 3, 4), newRun(3, 4, 5, 6), []uint32{1, 2, 5, 6}},
		{"bmp ⊕ arr overlap", newBmp(1, 2, 3, 4), newArr(3, 4, 5, 6), []uint32{1, 2, 5, 6}},

		{"one side empty", newArr(1, 2, 3), newArr(), []uint32{1, 2, 3}},
		{"empty side left", newArr(), newArr(1, 2, 3), []uint32{1, 2, 3}},
		{"boundary", newArr(0, 65535), newArr(0, 1), []uint32{1, 65535}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			a := bitmapWith(tt.c1)
			b := bitmapWith(tt.c2)
			bv := valuesOf(b)

			a.Xor(b)

			assert.Equal(t, tt.result, valuesOf(a))
			assert.Equal(t, bv, valuesOf(b))
		})
	}
}

// TestXorSelfInverse is property §8.3: xor(a,a) is always empty.
func TestXorSelfInverse(t *testing.T) {
	a := bitmapFrom(genRand(500, 20000))
	a.Xor(a)
	assert.Zero(t, a.Cardinality())
	assert.Empty(t, a.ToArray())
}

func TestXorCommutative(t *testing.T) {
	a := bitmapFrom(genRand(300, 5000))
	b := bitmapFrom(genRand(300, 5000))

	ab := a.Clone(nil)
	ab.Xor(b)

	ba := b.Clone(nil)
	ba.Xor(a)

	assert.Equal(t, valuesOf(ab), valuesOf(ba))
}

func TestXorAssociative(t *testing.T) {
	a := bitmapFrom(genRand(200, 2000))
	b := bitmapFrom(genRand(200, 2000))
	c := bitmapFrom(genRand(200, 2000))

	left := a.Clone(nil)
	left.Xor(b)
	left.Xor(c)

	right := b.Clone(nil)
	right.Xor(c)
	ac := a.Clone(nil)
	ac.Xor(right)

	assert.Equal(t, valuesOf(left), valuesOf(ac))
}

func TestXorInPlaceEquivalence(t *testing.T) {
	a := bitmapFrom(genRand(400, 8000))
	b := bitmapFrom(genRand(400, 8000))

	want := Xor(a, b)

	got := a.Clone(nil)
	got.Xor(b)

	assert.Equal(t, want.ToArray(), got.ToArray())
}

func TestXorAcrossMultipleBuckets(t *testing.T) {
	a := bitmapFrom([]uint32{0, 65536, 131072})
	b := bitmapFrom([]uint32{65536, 196608})

	a.Xor(b)
	assert.Equal(t, []uint32{0, 131072, 196608}, valuesOf(a))
}
