// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "github.com/kelindar/bitmap"

// bmp reinterprets a bitset container's payload as a kelindar/bitmap.Bitmap
// without copying, exactly as the array/run kernels reinterpret theirs as
// plain []uint16.
func (c *container) bmp() bitmap.Bitmap {
	return asBitmap(c.Data)
}

// bmpSet sets a value in a bitset container.
func (c *container) bmpSet(value uint16) bool {
	b := c.bmp()
	if b.Contains(uint32(value)) {
		return false
	}
	b.Set(uint32(value))
	c.Size++
	return true
}

// bmpDel removes a value from a bitset container.
func (c *container) bmpDel(value uint16) bool {
	b := c.bmp()
	if !b.Contains(uint32(value)) {
		return false
	}
	b.Remove(uint32(value))
	c.Size--
	return true
}

// bmpHas checks if a value exists in a bitset container.
func (c *container) bmpHas(value uint16) bool {
	return c.bmp().Contains(uint32(value))
}

// bmpToArr converts this container from bitset to array.
func (c *container) bmpToArr() {
	b := c.bmp()
	arr := make([]uint16, 0, c.Size)
	b.Range(func(x uint32) {
		arr = append(arr, uint16(x))
	})

	c.Data = arr
	c.Type = typeArray
}

// bmpMin returns the smallest value in a bitset container.
func (c *container) bmpMin() (uint16, bool) {
	b := c.bmp()
	for i, word := range b {
		if word == 0 {
			continue
		}
		for bit := 0; bit < 64; bit++ {
			if word&(1<<uint(bit)) != 0 {
				return uint16(i*64 + bit), true
			}
		}
	}
	return 0, false
}

// bmpMax returns the largest value in a bitset container.
func (c *container) bmpMax() (uint16, bool) {
	b := c.bmp()
	for i := len(b) - 1; i >= 0; i-- {
		word := b[i]
		if word == 0 {
			continue
		}
		for bit := 63; bit >= 0; bit-- {
			if word&(1<<uint(bit)) != 0 {
				return uint16(i*64 + bit), true
			}
		}
	}
	return 0, false
}

// bmpMinZero returns the smallest unset value in a bitset container.
func (c *container) bmpMinZero() (uint16, bool) {
	b := c.bmp()
	for i, word := range b {
		if word == ^uint64(0) {
			continue
		}
		for bit := 0; bit < 64; bit++ {
			if word&(1<<uint(bit)) == 0 {
				return uint16(i*64 + bit), true
			}
		}
	}
	return 0, false
}
