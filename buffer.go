// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"sync"
	"unsafe"

	"github.com/kelindar/bitmap"
)

// bitsetWords is the number of uint16 slots a bitset container's Data holds
// once reinterpreted as 1024 uint64 words (65536 bits).
const bitsetWords = 4096

// bitsetPayloadBytes is the fixed wire size of a bitset container's payload.
const bitsetPayloadBytes = 8192

var pool = sync.Pool{
	New: func() any {
		return make([]uint16, 0, bitsetWords)
	},
}

// borrowArray returns a pooled []uint16 scratch buffer.
func borrowArray() []uint16 {
	return pool.Get().([]uint16)
}

// borrowBitmap returns a zeroed, pooled bitset-sized buffer reinterpreted as
// a github.com/kelindar/bitmap.Bitmap.
func borrowBitmap() bitmap.Bitmap {
	arr := borrowArray()
	if cap(arr) < bitsetWords {
		arr = make([]uint16, bitsetWords)
	}

	out := asBitmap(arr[:bitsetWords])
	for i := range out {
		out[i] = 0
	}
	return out
}

// release returns a scratch buffer to the pool.
func release(v any) {
	switch v := v.(type) {
	case []uint16:
		pool.Put(v[:0])
	case bitmap.Bitmap:
		pool.Put(asUint16s(v[:0]))
	}
}

// asBitmap reinterprets a bitset container's []uint16 payload as the word
// slice github.com/kelindar/bitmap.Bitmap operates on, with no copy.
func asBitmap(data []uint16) bitmap.Bitmap {
	if len(data) == 0 {
		return nil
	}
	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/4))
}

// asUint16s is the inverse of asBitmap.
func asUint16s(data bitmap.Bitmap) []uint16 {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)*4)
}
