// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "errors"

// ErrInvalidFormat is returned by decoding when the buffer does not contain
// a well-formed serialized bitmap: a length mismatch, an unknown typecode,
// non-ascending directory keys, or a truncated payload.
var ErrInvalidFormat = errors.New("roaring: invalid serialized format")

// ErrPrecondition is returned when an operation is asked to violate one of
// its own invariants, e.g. downsize to a length larger than the current
// size. These signal programmer error rather than bad input data.
var ErrPrecondition = errors.New("roaring: precondition violated")
