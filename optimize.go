// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// RunOptimize walks every bucket and converts it to whichever representation
// has the smallest serialized payload: the array/bitset its cardinality
// would ordinarily pick per the density threshold, or run if run strictly
// beats that alternative. It reports whether any bucket's shape changed.
func (rb *Bitmap) RunOptimize() bool {
	changed := false
	for i := 0; i < rb.dir.size(); i++ {
		if optimizeContainer(rb.dir.getAt(i)) {
			changed = true
		}
	}
	return changed
}

// RemoveRunCompression converts every run bucket back to array or bitset per
// the density threshold, and reports whether any bucket's shape changed.
func (rb *Bitmap) RemoveRunCompression() bool {
	changed := false
	for i := 0; i < rb.dir.size(); i++ {
		c := rb.dir.getAt(i)
		if c.Type != typeRun {
			continue
		}
		c.fork()
		if c.Size <= DefaultMaxSize {
			c.runToArray()
		} else {
			c.runToBmp()
		}
		changed = true
	}
	return changed
}

// optimizeContainer canonicalizes a single container in place, returning
// whether its representation changed.
func optimizeContainer(c *container) bool {
	if c.Size == 0 {
		return false
	}
	c.fork()

	values := containerValues(c)
	runPairs := runEncode(values)
	runSize := 2 + len(runPairs)*2

	var altType ctype
	var altSize int
	if c.Size <= DefaultMaxSize {
		altType = typeArray
		altSize = 2 + int(c.Size)*2
	} else {
		altType = typeBitset
		altSize = bitsetPayloadBytes
	}

	if runSize < altSize {
		if c.Type == typeRun {
			return false
		}
		c.Data = runPairs
		c.Type = typeRun
		return true
	}

	if c.Type == altType {
		return false
	}
	if altType == typeArray {
		c.Data = values
	} else {
		bm := borrowBitmap()
		for _, v := range values {
			bm.Set(uint32(v))
		}
		c.Data = asUint16s(bm)
	}
	c.Type = altType
	return true
}

// containerValues returns every member of c, in ascending order, regardless
// of its current representation.
func containerValues(c *container) []uint16 {
	switch c.Type {
	case typeArray:
		out := make([]uint16, len(c.Data))
		copy(out, c.Data)
		return out
	case typeBitset:
		out := make([]uint16, 0, c.Size)
		b := c.bmp()
		b.Range(func(x uint32) {
			out = append(out, uint16(x))
		})
		return out
	case typeRun:
		out := make([]uint16, 0, c.Size)
		n := len(c.Data) / 2
		for i := 0; i < n; i++ {
			start, end := c.Data[i*2], c.Data[i*2+1]
			for v := uint32(start); v <= uint32(end); v++ {
				out = append(out, uint16(v))
			}
		}
		return out
	}
	return nil
}

// runEncode coalesces a sorted, distinct value list into (start, end) run
// pairs.
func runEncode(values []uint16) []uint16 {
	if len(values) == 0 {
		return nil
	}

	pairs := make([]uint16, 0, 16)
	start := values[0]
	end := values[0]
	for _, v := range values[1:] {
		if v == end+1 {
			end = v
			continue
		}
		pairs = append(pairs, start, end)
		start, end = v, v
	}
	pairs = append(pairs, start, end)
	return pairs
}
