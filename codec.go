// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"unsafe"
)

var isLittleEndian = binary.LittleEndian.Uint16([]byte{1, 0}) == 1

// ToBytes serializes the bitmap into the self-describing wire format: a
// u32 total_len header, a directory of keys and typecodes, then one
// length-prefixed payload per container.
func (rb *Bitmap) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteTo writes the serialized bitmap to w and returns the number of bytes
// written.
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	size := uint32(rb.dir.size())

	var body bytes.Buffer
	for i := 0; i < int(size); i++ {
		if err := binary.Write(&body, binary.LittleEndian, rb.dir.keyAt(i)); err != nil {
			return 0, err
		}
	}
	for i := 0; i < int(size); i++ {
		if err := body.WriteByte(byte(rb.dir.getAt(i).Type)); err != nil {
			return 0, err
		}
	}
	for i := 0; i < int(size); i++ {
		payload, err := encodePayload(rb.dir.getAt(i))
		if err != nil {
			return 0, err
		}
		if err := binary.Write(&body, binary.LittleEndian, uint16(len(payload))); err != nil {
			return 0, err
		}
		if _, err := body.Write(payload); err != nil {
			return 0, err
		}
	}

	totalLen := uint32(4+4+4) + uint32(body.Len())
	var header bytes.Buffer
	binary.Write(&header, binary.LittleEndian, totalLen)
	binary.Write(&header, binary.LittleEndian, size) // allocation_size == size, no slack on the wire
	binary.Write(&header, binary.LittleEndian, size)

	n1, err := w.Write(header.Bytes())
	if err != nil {
		return int64(n1), err
	}
	n2, err := w.Write(body.Bytes())
	return int64(n1 + n2), err
}

// encodePayload writes a single container's typed payload per §6: array is
// a cardinality-prefixed key list, bitset is the raw 8192-byte word image,
// run is a run-count-prefixed (start, length_minus_one) list.
func encodePayload(c *container) ([]byte, error) {
	var buf bytes.Buffer
	switch c.Type {
	case typeArray:
		if err := binary.Write(&buf, binary.LittleEndian, uint16(len(c.Data))); err != nil {
			return nil, err
		}
		if err := writeUint16s(&buf, isLittleEndian, c.Data); err != nil {
			return nil, err
		}
	case typeBitset:
		if err := writeUint16s(&buf, isLittleEndian, c.Data[:bitsetWords]); err != nil {
			return nil, err
		}
	case typeRun:
		numRuns := len(c.Data) / 2
		if err := binary.Write(&buf, binary.LittleEndian, uint16(numRuns)); err != nil {
			return nil, err
		}
		pairs := make([]uint16, len(c.Data))
		for i := 0; i < numRuns; i++ {
			pairs[i*2] = c.Data[i*2]
			pairs[i*2+1] = c.Data[i*2+1] - c.Data[i*2] // length_minus_one
		}
		if err := writeUint16s(&buf, isLittleEndian, pairs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown container type %d", ErrInvalidFormat, c.Type)
	}
	return buf.Bytes(), nil
}

// decodePayload parses a single container's typed payload, validating that
// its length matches what the typecode requires.
func decodePayload(t ctype, payload []byte) (container, error) {
	r := bytes.NewReader(payload)
	switch t {
	case typeArray:
		var card uint16
		if err := binary.Read(r, binary.LittleEndian, &card); err != nil {
			return container{}, fmt.Errorf("%w: truncated array payload: %v", ErrInvalidFormat, err)
		}
		data, err := readUint16s(r, isLittleEndian, int(card)*2)
		if err != nil {
			return container{}, fmt.Errorf("%w: array payload: %v", ErrInvalidFormat, err)
		}
		if card == 0 {
			return container{}, fmt.Errorf("%w: empty array container", ErrInvalidFormat)
		}
		if r.Len() != 0 {
			return container{}, fmt.Errorf("%w: array payload has %d trailing bytes", ErrInvalidFormat, r.Len())
		}
		return container{Type: typeArray, Size: uint32(card), Data: data}, nil

	case typeBitset:
		if len(payload) != bitsetPayloadBytes {
			return container{}, fmt.Errorf("%w: bitset payload must be %d bytes, got %d", ErrInvalidFormat, bitsetPayloadBytes, len(payload))
		}
		data, err := readUint16s(r, isLittleEndian, bitsetPayloadBytes)
		if err != nil {
			return container{}, fmt.Errorf("%w: bitset payload: %v", ErrInvalidFormat, err)
		}
		sz := uint32(0)
		for _, v := range data {
			sz += uint32(bits.OnesCount16(v))
		}
		if sz == 0 {
			return container{}, fmt.Errorf("%w: empty bitset container", ErrInvalidFormat)
		}
		return container{Type: typeBitset, Size: sz, Data: data}, nil

	case typeRun:
		var numRuns uint16
		if err := binary.Read(r, binary.LittleEndian, &numRuns); err != nil {
			return container{}, fmt.Errorf("%w: truncated run payload: %v", ErrInvalidFormat, err)
		}
		raw, err := readUint16s(r, isLittleEndian, int(numRuns)*4)
		if err != nil {
			return container{}, fmt.Errorf("%w: run payload: %v", ErrInvalidFormat, err)
		}
		data := make([]uint16, int(numRuns)*2)
		size := uint32(0)
		prevEnd := -1
		for i := 0; i < int(numRuns); i++ {
			start, lengthMinusOne := raw[i*2], raw[i*2+1]
			end := start + lengthMinusOne
			if int(start) <= prevEnd {
				return container{}, fmt.Errorf("%w: run container not strictly ascending", ErrInvalidFormat)
			}
			data[i*2] = start
			data[i*2+1] = end
			size += uint32(lengthMinusOne) + 1
			prevEnd = int(end)
		}
		if size == 0 {
			return container{}, fmt.Errorf("%w: empty run container", ErrInvalidFormat)
		}
		if r.Len() != 0 {
			return container{}, fmt.Errorf("%w: run payload has %d trailing bytes", ErrInvalidFormat, r.Len())
		}
		return container{Type: typeRun, Size: size, Data: data}, nil

	default:
		return container{}, fmt.Errorf("%w: unknown typecode %d", ErrInvalidFormat, t)
	}
}

// FromBytes deserializes a bitmap from a byte buffer, validating that the
// buffer's length matches the embedded total_len header exactly.
func FromBytes(buf []byte) (*Bitmap, error) {
	if len(buf) < 12 {
		return nil, fmt.Errorf("%w: buffer shorter than header", ErrInvalidFormat)
	}
	totalLen := binary.LittleEndian.Uint32(buf[0:4])
	if uint32(len(buf)) != totalLen {
		return nil, fmt.Errorf("%w: total_len %d does not match buffer size %d", ErrInvalidFormat, totalLen, len(buf))
	}

	rb := New()
	if _, err := rb.ReadFrom(bytes.NewReader(buf)); err != nil {
		return nil, err
	}
	return rb, nil
}

// ReadFrom deserializes a bitmap read from r, trusting the embedded
// total_len header to know how many more bytes to consume.
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	if _, err := rb.ReadFrom(r); err != nil {
		return nil, err
	}
	return rb, nil
}

// ReadFrom reads a serialized bitmap from r into rb, replacing its contents.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()

	var totalLenBuf [4]byte
	if _, err := io.ReadFull(r, totalLenBuf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	totalLen := binary.LittleEndian.Uint32(totalLenBuf[:])
	if totalLen < 12 {
		return 0, fmt.Errorf("%w: total_len %d too small for header", ErrInvalidFormat, totalLen)
	}

	rest := make([]byte, totalLen-4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := rb.decodeBody(rest); err != nil {
		return 0, err
	}
	return int64(totalLen), nil
}

// decodeBody parses everything after the total_len field: the directory
// header, the key and typecode vectors, and the per-container payloads.
func (rb *Bitmap) decodeBody(buf []byte) error {
	if len(buf) < 8 {
		return fmt.Errorf("%w: truncated directory header", ErrInvalidFormat)
	}
	size := binary.LittleEndian.Uint32(buf[0:4])
	allocSize := binary.LittleEndian.Uint32(buf[4:8])
	if allocSize < size {
		return fmt.Errorf("%w: allocation_size %d smaller than size %d", ErrInvalidFormat, allocSize, size)
	}

	off := 8
	need := int(allocSize)*2 + int(allocSize)
	if off+need > len(buf) {
		return fmt.Errorf("%w: truncated key/typecode vectors", ErrInvalidFormat)
	}

	keys := make([]uint16, allocSize)
	for i := 0; i < int(allocSize); i++ {
		keys[i] = binary.LittleEndian.Uint16(buf[off+i*2:])
	}
	off += int(allocSize) * 2

	types := make([]ctype, allocSize)
	for i := 0; i < int(allocSize); i++ {
		types[i] = ctype(buf[off+i])
	}
	off += int(allocSize)

	var prevKey uint16
	for i := 0; i < int(size); i++ {
		if i > 0 && keys[i] <= prevKey {
			return fmt.Errorf("%w: directory keys not strictly ascending", ErrInvalidFormat)
		}
		prevKey = keys[i]

		if off+2 > len(buf) {
			return fmt.Errorf("%w: truncated payload_len", ErrInvalidFormat)
		}
		payloadLen := int(binary.LittleEndian.Uint16(buf[off:]))
		off += 2
		if off+payloadLen > len(buf) {
			return fmt.Errorf("%w: truncated payload", ErrInvalidFormat)
		}
		payload := buf[off : off+payloadLen]
		off += payloadLen

		c, err := decodePayload(types[i], payload)
		if err != nil {
			return err
		}
		rb.dir.append(keys[i], c)
	}

	if off != len(buf) {
		return fmt.Errorf("%w: trailing or missing bytes after containers", ErrInvalidFormat)
	}
	return nil
}

// writeUint16s writes a slice of uint16s to a writer, converting it to []byte if
// the machine is little endian.
func writeUint16s(w io.Writer, isLittleEndian bool, data []uint16) error {
	if len(data) == 0 {
		return nil
	}
	switch isLittleEndian {
	case true:
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
		_, err := w.Write(buf)
		return err
	default:
		return binary.Write(w, binary.LittleEndian, data)
	}
}

// readUint16s reads sizeBytes worth of uint16s from a reader, converting
// from []byte if the machine is little endian.
func readUint16s(r io.Reader, isLittleEndian bool, sizeBytes int) ([]uint16, error) {
	if sizeBytes == 0 {
		return nil, nil
	}
	count := sizeBytes / 2
	switch isLittleEndian {
	case true:
		out := make([]byte, sizeBytes)
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, err
		}
		return unsafe.Slice((*uint16)(unsafe.Pointer(&out[0])), count), nil
	default:
		out := make([]uint16, count)
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}
