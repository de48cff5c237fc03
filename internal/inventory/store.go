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

// Package inventory holds the replicated title→stock map served by the
// primary and its backups. A single mutex guards the map of per-title
// accumulators; each accumulator (pkg/vsa.VSA) guards its own conditional
// decrement with its own lock. DecrementStock holds the map lock only for the
// title lookup, so calls on different titles never wait on each other's
// decrement.
package inventory

import (
	"sync"

	"checkout/pkg/vsa"
)

// Store is a replicated in-memory stock ledger, one *vsa.VSA per title.
// Available() on a title's VSA is its current stock; TryConsume(quantity)
// is the atomic "decrement iff stock >= quantity" spec.md §4.7 requires.
type Store struct {
	mu     sync.Mutex
	titles map[string]*vsa.VSA
}

// NewStore creates a Store, optionally seeded with initial stock levels.
// A nil seed starts with an empty catalogue; titles not yet written report
// zero stock from Read.
func NewStore(seed map[string]int64) *Store {
	s := &Store{titles: make(map[string]*vsa.VSA, len(seed))}
	for title, stock := range seed {
		s.titles[title] = vsa.New(stock)
	}
	return s
}

// getOrCreate returns the accumulator for title, creating one seeded at
// zero stock if absent.
func (s *Store) getOrCreate(title string) *vsa.VSA {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.titles[title]
	if !ok {
		v = vsa.New(0)
		s.titles[title] = v
	}
	return v
}

// Read returns the current stock for title, or 0 if the title is unknown.
func (s *Store) Read(title string) int64 {
	s.mu.Lock()
	v, ok := s.titles[title]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	return v.Available()
}

// DecrementStock performs the single serialization point that resolves
// stock conflicts: it succeeds iff available >= quantity, and the decrement
// is linearizable across every concurrent caller for the same title.
func (s *Store) DecrementStock(title string, quantity int64) (success bool, remaining int64) {
	v := s.getOrCreate(title)
	if v.TryConsume(quantity) {
		return true, v.Available()
	}
	return false, v.Available()
}

// Write sets title's stock to an exact value. Callers on the primary should
// follow Write with replication to every backup; Write itself only touches
// the local map.
func (s *Store) Write(title string, newStock int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles[title] = vsa.New(newStock)
}

// ReplicateWrite is the backup-side counterpart of Write: an unconditional
// overwrite with no further propagation.
func (s *Store) ReplicateWrite(title string, newStock int64) {
	s.Write(title, newStock)
}
