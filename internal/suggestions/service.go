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

// Package suggestions implements the stateless recommendation lookup: a
// built-in catalogue mapping a purchased title to related titles. Unlike
// fraud and transaction, there is no per-order state to protect with a
// mutex; the only mutable bookkeeping is this service's own vector-clock
// entry, which is incremented per call and keyed by the caller-supplied
// order id (via the X-Order-Id header, this spec's RPC-metadata analogue).
package suggestions

import (
	"sync"

	"checkout/pkg/vclock"
)

// ServiceID is this service's entry in the vector clock it returns.
const ServiceID = "suggestions"

// unknownOrderID is used when the caller supplies no order id metadata.
const unknownOrderID = "unknown"

var catalogue = map[string][]string{
	"Book A": {"Book C", "Book D"},
	"Book B": {"Book E", "Book F"},
	"Book K": {"Book G", "Book H"},
	"Book L": {"Book I", "Book J"},
}

// Service is the stateless suggestions lookup plus its per-order-id clocks.
type Service struct {
	mu     sync.Mutex
	clocks map[string]vclock.Clock
}

// NewService creates a Service backed by the built-in catalogue.
func NewService() *Service {
	return &Service{clocks: make(map[string]vclock.Clock)}
}

// GetSuggestions returns the deduplicated union of catalogue(title) over
// purchasedBooks, plus the incremented vector clock for orderID (or
// "unknown" when orderID is empty).
func (s *Service) GetSuggestions(orderID string, purchasedBooks []string) (titles []string, clock vclock.Clock) {
	if orderID == "" {
		orderID = unknownOrderID
	}

	s.mu.Lock()
	c, ok := s.clocks[orderID]
	if !ok {
		c = vclock.New(ServiceID)
	} else {
		c = c.Increment(ServiceID)
	}
	s.clocks[orderID] = c
	clock = c.Clone()
	s.mu.Unlock()

	seen := make(map[string]bool)
	var result []string
	for _, title := range purchasedBooks {
		for _, suggestion := range catalogue[title] {
			if !seen[suggestion] {
				seen[suggestion] = true
				result = append(result, suggestion)
			}
		}
	}
	return result, clock
}
