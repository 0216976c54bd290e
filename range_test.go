// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeVisitsEveryValueAscending(t *testing.T) {
	rb := New()
	values := []uint32{1, 2, 65537, 65538, 131072, 4294967295}
	for _, v := range values {
		rb.Set(v)
	}

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return true
	})

	assert.Equal(t, values, got)
}

func TestRangeEarlyTermination(t *testing.T) {
	rb := bitmapFrom(genSeq(100, 0))

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return len(got) < 5
	})

	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, got)
}

func TestRangeEarlyTerminationAcrossRunContainer(t *testing.T) {
	rb := New()
	for v := uint32(0); v < 5000; v++ {
		rb.Set(v)
	}
	rb.RunOptimize()
	assert.Equal(t, typeRun, rb.dir.getAt(0).Type)

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return len(got) < 3
	})

	assert.Equal(t, []uint32{0, 1, 2}, got)
}

func TestRangeEarlyTerminationAcrossBitsetContainer(t *testing.T) {
	rb := New()
	for v := uint32(0); v < 10000; v++ {
		rb.Set(v)
	}
	assert.Equal(t, typeBitset, rb.dir.getAt(0).Type)

	var got []uint32
	rb.Range(func(x uint32) bool {
		got = append(got, x)
		return len(got) < 3
	})

	assert.Equal(t, []uint32{0, 1, 2}, got)
}

func TestRangeEmpty(t *testing.T) {
	rb := New()
	calls := 0
	rb.Range(func(x uint32) bool {
		calls++
		return true
	})
	assert.Zero(t, calls)
}

func TestFilterRemovesRejectedValues(t *testing.T) {
	rb := bitmapFrom(genSeq(20, 0))

	rb.Filter(func(x uint32) bool {
		return x%2 == 0
	})

	want := make([]uint32, 0, 10)
	for i := uint32(0); i < 20; i += 2 {
		want = append(want, i)
	}
	assert.Equal(t, want, rb.ToArray())
}

func TestFilterKeepsAllWhenPredicateAlwaysTrue(t *testing.T) {
	values := genSeq(50, 100)
	rb := bitmapFrom(values)

	rb.Filter(func(x uint32) bool { return true })
	assert.Equal(t, values, rb.ToArray())
}

func TestFilterRemovesAllWhenPredicateAlwaysFalse(t *testing.T) {
	rb := bitmapFrom(genSeq(50, 0))

	rb.Filter(func(x uint32) bool { return false })
	assert.Zero(t, rb.Cardinality())
}

func TestFilterAcrossRepresentations(t *testing.T) {
	rb := New()
	for v := uint32(0); v < 10000; v++ { // run bucket after RunOptimize
		rb.Set(v)
	}
	for v := uint32(100000); v < 100020; v += 2 { // array bucket
		rb.Set(v)
	}
	rb.RunOptimize()

	rb.Filter(func(x uint32) bool {
		return x >= 5000
	})

	for _, v := range rb.ToArray() {
		assert.GreaterOrEqual(t, v, uint32(5000))
	}
	assert.EqualValues(t, 5000+10, rb.Cardinality())
}
