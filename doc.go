// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package roaring implements a Roaring-style compressed bitmap of 32-bit
// unsigned integers. Values are split into a 16-bit high key and a 16-bit
// low key; the high key selects a bucket in an ordered directory, and the
// low key is stored in that bucket's container using one of three
// representations: a sorted array, a 65536-bit bitset, or a sorted list of
// (start, end) runs.
//
// Containers convert between array and bitset automatically as their
// cardinality crosses DefaultMaxSize. Run containers are created only by
// RunOptimize, which picks the smallest encoding per bucket;
// RemoveRunCompression converts every run bucket back. Set operations may
// also convert a run container on the receiver side to an array or bitset. Cloning a bitmap is copy-on-write: no container payload is
// duplicated until one side mutates it.
package roaring
