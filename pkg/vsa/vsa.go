// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vsa provides a thread-safe, in-memory implementation of the
// Vector-Scalar Accumulator (VSA) architectural pattern, trimmed to the
// exact conditional-decrement one per-title stock counter needs: no commit
// cycle to a backing store, no refund path, no tunable striping -- this
// system's inventory is wholly in-memory, so the scalar never needs to be
// reconciled against anything.
package vsa

import "sync"

// VSA is a thread-safe, in-memory data structure for Vector-Scalar
// Accumulation. It tracks one title's stock by filtering oversubscription
// races out of concurrent conditional decrements.
type VSA struct {
	// scalar is the current stock level.
	scalar int64

	// vector is the volatile, in-flight adjustment not yet folded into scalar.
	vector int64

	// mu protects concurrent access to scalar and vector.
	mu sync.Mutex
}

// New creates a VSA seeded at initialScalar units of stock.
func New(initialScalar int64) *VSA {
	return &VSA{scalar: initialScalar}
}

// Available returns the real-time stock level: Available = Scalar - |Vector|.
func (v *VSA) Available() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scalar - abs(v.vector)
}

// TryConsume atomically checks whether at least n units are available and,
// if so, consumes them. This is the single serialization point that
// prevents an oversubscription race where multiple concurrent decrements
// could all observe the same positive availability and all proceed.
// Returns true if the consume succeeded.
func (v *VSA) TryConsume(n int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scalar-abs(v.vector) >= n {
		v.vector += n
		return true
	}
	return false
}

// abs is a helper for calculating the absolute value of an int64.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
