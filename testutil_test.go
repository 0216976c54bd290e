// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "math/rand/v2"

// newContainer builds a container of the given representation containing
// exactly the given values, inserted one at a time through the container's
// own mutators.
func newContainer(typ ctype, data ...uint32) *container {
	var backing []uint16
	if typ == typeBitset {
		backing = make([]uint16, bitsetWords)
	} else {
		backing = make([]uint16, 0, len(data))
	}

	c := &container{Type: typ, Data: backing}
	for _, v := range data {
		switch typ {
		case typeArray:
			c.arrSet(uint16(v))
		case typeBitset:
			c.bmpSet(uint16(v))
		case typeRun:
			c.runSet(uint16(v))
		}
	}
	return c
}

func newArr(data ...uint32) *container { return newContainer(typeArray, data...) }
func newBmp(data ...uint32) *container { return newContainer(typeBitset, data...) }
func newRun(data ...uint32) *container { return newContainer(typeRun, data...) }

// bitmapWith wraps a single container as bucket 0 of a fresh bitmap.
func bitmapWith(c *container) *Bitmap {
	rb := New()
	rb.dir.append(0, *c)
	return rb
}

// valuesOf collects every member of rb in ascending order.
func valuesOf(rb *Bitmap) []uint32 {
	out := []uint32{}
	rb.Range(func(x uint32) bool {
		out = append(out, x)
		return true
	})
	return out
}

// genSeq creates consecutive integers starting from offset.
func genSeq(size int, offset uint32) []uint32 {
	data := make([]uint32, size)
	for i := 0; i < size; i++ {
		data[i] = offset + uint32(i)
	}
	return data
}

// genRand creates random integers within [0, maxVal).
func genRand(size int, maxVal uint32) []uint32 {
	data := make([]uint32, size)
	for i := 0; i < size; i++ {
		data[i] = uint32(rand.IntN(int(maxVal)))
	}
	return data
}

// genSparse creates sparse integers with large gaps.
func genSparse(size int) []uint32 {
	data := make([]uint32, size)
	for i := 0; i < size; i++ {
		data[i] = uint32(i * 1000)
	}
	return data
}

// bitmapFrom builds a bitmap containing exactly the given values.
func bitmapFrom(data []uint32) *Bitmap {
	rb := New()
	for _, v := range data {
		rb.Set(v)
	}
	return rb
}
