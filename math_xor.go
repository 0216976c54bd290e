// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// xor performs XOR with a single bitmap efficiently
func (rb *Bitmap) xor(other *Bitmap) {
	switch {
	case other == nil || other.dir.size() == 0:
		return // No change needed
	case rb.dir.size() == 0:
		// A XOR B = B when A is empty
		rb.dir.copyFrom(&other.dir)
		return
	}

	// Merge containers from both bitmaps using XOR logic
	i, j := 0, 0
	var newDir directory

	for i < rb.dir.size() && j < other.dir.size() {
		hi1, hi2 := rb.dir.keyAt(i), other.dir.keyAt(j)
		switch {
		case hi1 < hi2:
			newDir.append(hi1, *rb.dir.getAt(i))
			i++
		case hi1 > hi2:
			other.dir.getAt(j).Shared = true
			newDir.append(hi2, *other.dir.getAt(j))
			j++
		default:
			c1 := rb.dir.getAt(i)
			c2 := other.dir.getAt(j)
			if rb.ctrXor(c1, c2) {
				newDir.append(hi1, *c1)
			}
			i++
			j++
		}
	}

	// Add remaining containers from left
	for ; i < rb.dir.size(); i++ {
		newDir.append(rb.dir.keyAt(i), *rb.dir.getAt(i))
	}

	// Add remaining containers from right
	for ; j < other.dir.size(); j++ {
		other.dir.getAt(j).Shared = true
		newDir.append(other.dir.keyAt(j), *other.dir.getAt(j))
	}

	rb.dir = newDir
}

// ctrXor performs efficient XOR between two containers
func (rb *Bitmap) ctrXor(c1, c2 *container) bool {
	c1.fork()
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			return rb.arrXorArr(c1, c2)
		case typeBitset:
			return rb.arrXorBmp(c1, c2)
		case typeRun:
			return rb.arrXorRun(c1, c2)
		}
	case typeBitset:
		switch c2.Type {
		case typeArray:
			return rb.bmpXorArr(c1, c2)
		case typeBitset:
			return rb.bmpXorBmp(c1, c2)
		case typeRun:
			return rb.bmpXorRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			return rb.runXorArr(c1, c2)
		case typeBitset:
			return rb.runXorBmp(c1, c2)
		case typeRun:
			return rb.runXorRun(c1, c2)
		}
	}
	return false
}

// arrXorArr performs XOR between two array containers
func (rb *Bitmap) arrXorArr(c1, c2 *container) bool {
	a, b := c1.Data, c2.Data
	out := rb.scratch[:0]
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]
		switch {
		case av == bv:
			// Same element in both - exclude from XOR
			i++
			j++
		case av < bv:
			// Only in first array
			out = append(out, av)
			i++
		default: // av > bv
			// Only in second array
			out = append(out, bv)
			j++
		}
	}

	// Add remaining elements from first array
	for i < len(a) {
		out = append(out, a[i])
		i++
	}
	// Add remaining elements from second array
	for j < len(b) {
		out = append(out, b[j])
		j++
	}

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	rb.scratch = out
	if c1.Size > DefaultMaxSize {
		c1.arrToBmp()
	}
	return c1.Size > 0
}

// arrXorBmp performs XOR between array and bitmap containers
func (rb *Bitmap) arrXorBmp(c1, c2 *container) bool {
	// Convert to bitmap for efficient XOR
	c1.arrToBmp()
	return rb.bmpXorBmp(c1, c2)
}

// arrXorRun performs XOR between array and run containers. The array and
// the run's expansion are merged in ascending order directly, rather than
// concatenating two separately-filtered passes, to keep the result sorted.
func (rb *Bitmap) arrXorRun(c1, c2 *container) bool {
	a, runs := c1.Data, c2.Data
	out := rb.scratch[:0]
	ai := 0

	for ri := 0; ri*2+1 < len(runs); ri++ {
		start, end := uint32(runs[ri*2]), uint32(runs[ri*2+1])
		for v := start; v <= end; v++ {
			for ai < len(a) && uint32(a[ai]) < v {
				out = append(out, a[ai])
				ai++
			}
			if ai < len(a) && uint32(a[ai]) == v {
				ai++ // in both: excluded
			} else {
				out = append(out, uint16(v))
			}
			if v == end {
				break // prevent overflow when end == 65535
			}
		}
	}

	for ai < len(a) {
		out = append(out, a[ai])
		ai++
	}

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	c1.Type = typeArray
	rb.scratch = out
	if c1.Size > DefaultMaxSize {
		c1.arrToBmp()
	}
	return c1.Size > 0
}

// bmpXorArr performs XOR between bitmap and array containers
func (rb *Bitmap) bmpXorArr(c1, c2 *container) bool {
	bmp := c1.bmp()
	for _, val := range c2.Data {
		if bmp.Contains(uint32(val)) {
			bmp.Remove(uint32(val))
			c1.Size--
		} else {
			bmp.Set(uint32(val))
			c1.Size++
		}
	}
	return c1.Size > 0
}

// bmpXorBmp performs XOR between two bitmap containers
func (rb *Bitmap) bmpXorBmp(c1, c2 *container) bool {
	a, b := c1.bmp(), c2.bmp()
	if b == nil {
		return c1.Size > 0
	}

	a.Xor(b)
	c1.Size = uint32(a.Count())
	return c1.Size > 0
}

// bmpXorRun performs XOR between bitmap and run containers
func (rb *Bitmap) bmpXorRun(c1, c2 *container) bool {
	bmp := c1.bmp()
	runs := c2.Data

	for i := 0; i < len(runs); i += 2 {
		start, end := uint32(runs[i]), uint32(runs[i+1])
		for v := start; v <= end; v++ {
			if bmp.Contains(v) {
				bmp.Remove(v)
				c1.Size--
			} else {
				bmp.Set(v)
				c1.Size++
			}
		}
	}
	return c1.Size > 0
}

// runXorArr performs XOR between run and array containers
func (rb *Bitmap) runXorArr(c1, c2 *container) bool {
	c1.runToArray()
	result := rb.arrXorArr(c1, c2)
	if c1.Size > DefaultMaxSize {
		c1.arrToBmp()
	}
	return result
}

// runXorBmp performs XOR between run and bitmap containers
func (rb *Bitmap) runXorBmp(c1, c2 *container) bool {
	// Convert run to bitmap and XOR
	c1.runToBmp()
	return rb.bmpXorBmp(c1, c2)
}

// runXorRun performs XOR between two run containers
func (rb *Bitmap) runXorRun(c1, c2 *container) bool {
	// For simplicity, convert both to arrays, XOR, then optimize
	c1.runToArray()

	// Create temporary array from second run container
	runs := c2.Data
	var tempArray []uint16
	for i := 0; i < len(runs); i += 2 {
		start, end := uint32(runs[i]), uint32(runs[i+1])
		for v := start; v <= end; v++ {
			tempArray = append(tempArray, uint16(v))
		}
	}

	temp := &container{
		Type: typeArray,
		Data: tempArray,
		Size: uint32(len(tempArray)),
	}

	result := rb.arrXorArr(c1, temp)
	if c1.Size > DefaultMaxSize {
		c1.arrToBmp()
	}
	return result
}
