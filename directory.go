// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// directory is the ordered top-level structure mapping 16-bit high keys to
// containers. It owns the two parallel vectors and is the unique holder of
// every container it stores: a handle written into a slot is exclusively
// owned by that slot until the slot is overwritten or removed.
type directory struct {
	keys       []uint16
	containers []container
}

// size returns the number of occupied slots.
func (d *directory) size() int {
	return len(d.keys)
}

// indexOf returns the index of key if present, and whether it was found.
// When absent, index is the insertion point that keeps keys ascending.
func (d *directory) indexOf(key uint16) (index int, found bool) {
	return find16(d.keys, key)
}

// getAt returns the container at position i.
func (d *directory) getAt(i int) *container {
	return &d.containers[i]
}

// keyAt returns the key at position i.
func (d *directory) keyAt(i int) uint16 {
	return d.keys[i]
}

// append adds a new slot at the end. The caller guarantees key is greater
// than every existing key.
func (d *directory) append(key uint16, c container) {
	d.keys = append(d.keys, key)
	d.containers = append(d.containers, c)
}

// insertAt shifts the tail right by one slot and writes (key, c) at i.
func (d *directory) insertAt(i int, key uint16, c container) {
	d.keys = append(d.keys, 0)
	copy(d.keys[i+1:], d.keys[i:len(d.keys)-1])
	d.keys[i] = key

	d.containers = append(d.containers, container{})
	copy(d.containers[i+1:], d.containers[i:len(d.containers)-1])
	d.containers[i] = c
}

// setAt replaces the container at i, taking ownership of c. The prior
// container at that slot is dropped (it is either returned to a pool by the
// caller beforehand, or reused in place as c itself).
func (d *directory) setAt(i int, c container) {
	d.containers[i] = c
}

// replaceKeyAndContainerAt replaces both the key and the container at i.
func (d *directory) replaceKeyAndContainerAt(i int, key uint16, c container) {
	d.keys[i] = key
	d.containers[i] = c
}

// removeAt drops the slot at i, shifting the tail left by one.
func (d *directory) removeAt(i int) {
	copy(d.keys[i:], d.keys[i+1:])
	d.keys = d.keys[:len(d.keys)-1]

	copy(d.containers[i:], d.containers[i+1:])
	d.containers = d.containers[:len(d.containers)-1]
}

// advanceUntil returns the first index >= from with keys[index] >= key,
// without freeing anything it skips over.
func (d *directory) advanceUntil(key uint16, from int) int {
	idx, _ := find16(d.keys[from:], key)
	return from + idx
}

// advanceUntilFreeing behaves like advanceUntil but drops every slot it
// skips past, used by in-place intersection to discard buckets that cannot
// contribute to the result.
func (d *directory) advanceUntilFreeing(key uint16, from int) int {
	to := d.advanceUntil(key, from)
	if to > from {
		copy(d.keys[from:], d.keys[to:])
		d.keys = d.keys[:len(d.keys)-(to-from)]

		copy(d.containers[from:], d.containers[to:])
		d.containers = d.containers[:len(d.containers)-(to-from)]
		return from
	}
	return from
}

// downsize truncates the logical length to newLen. The caller must already
// have transferred or freed every slot in [newLen, size).
func (d *directory) downsize(newLen int) error {
	if newLen > d.size() {
		return ErrPrecondition
	}
	d.keys = d.keys[:newLen]
	d.containers = d.containers[:newLen]
	return nil
}

// clear empties the directory, keeping backing capacity.
func (d *directory) clear() {
	d.keys = d.keys[:0]
	d.containers = d.containers[:0]
}

// copyFrom clones src into d copy-on-write: every container is marked shared
// and copied by value, so d and src share payloads until the first mutation
// on either side forks its own copy.
func (d *directory) copyFrom(src *directory) {
	if cap(d.containers) < len(src.containers) {
		d.containers = make([]container, len(src.containers))
	}
	d.containers = d.containers[:len(src.containers)]
	for i := range src.containers {
		src.containers[i].Shared = true
	}
	copy(d.containers, src.containers)

	if cap(d.keys) < len(src.keys) {
		d.keys = make([]uint16, len(src.keys))
	}
	d.keys = d.keys[:len(src.keys)]
	copy(d.keys, src.keys)
}
