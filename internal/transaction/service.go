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

// Package transaction implements the stateful, vector-clocked transaction
// checker: field and format validation against the same single-mutex,
// per-order-map shape as internal/fraud.
package transaction

import (
	"sync"
	"unicode"

	"checkout/pkg/vclock"
)

// ServiceID is this checker's entry in every order's vector clock.
const ServiceID = "transaction_verification"

// UserFields carries the customer-facing fields CheckUserFields validates.
type UserFields struct {
	Name    string
	Contact string
	Address string
}

type orderState struct {
	books      []string
	user       UserFields
	cardNumber string
	clock      vclock.Clock
}

// Service holds the in-memory per-order transaction-verification state.
type Service struct {
	mu     sync.Mutex
	orders map[string]*orderState
}

// NewService creates an empty transaction checker.
func NewService() *Service {
	return &Service{orders: make(map[string]*orderState)}
}

// InitOrder creates the per-order record and seeds its vector clock to
// {transaction_verification: 1}. cardNumber is expected already normalized
// (spaces and dashes stripped) by the caller, per spec.md §4.1.
func (s *Service) InitOrder(orderID string, user UserFields, books []string, cardNumber string) (success bool, clock vclock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := vclock.New(ServiceID)
	s.orders[orderID] = &orderState{books: books, user: user, cardNumber: cardNumber, clock: c}
	return true, c.Clone()
}

func (s *Service) step(orderID string, check func(*orderState) (bool, string)) (success bool, message string, clock vclock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[orderID]
	if !ok {
		return false, "order not found", nil
	}
	st.clock = st.clock.Increment(ServiceID)
	ok2, msg := check(st)
	return ok2, msg, st.clock.Clone()
}

// CheckBooks requires the order's book list to be non-empty.
func (s *Service) CheckBooks(orderID string) (success bool, message string, clock vclock.Clock) {
	return s.step(orderID, func(st *orderState) (bool, string) {
		if len(st.books) == 0 {
			return false, "No books in order"
		}
		return true, "Books valid"
	})
}

// CheckUserFields requires name, contact and address to all be non-empty.
func (s *Service) CheckUserFields(orderID string) (success bool, message string, clock vclock.Clock) {
	return s.step(orderID, func(st *orderState) (bool, string) {
		if st.user.Name == "" || st.user.Contact == "" || st.user.Address == "" {
			return false, "Missing user fields"
		}
		return true, "User fields valid"
	})
}

// CheckCardFormat requires the card number to consist of exactly 16 decimal
// digits.
func (s *Service) CheckCardFormat(orderID string) (success bool, message string, clock vclock.Clock) {
	return s.step(orderID, func(st *orderState) (bool, string) {
		if !isSixteenDigits(st.cardNumber) {
			return false, "Invalid credit card format"
		}
		return true, "Card format valid"
	})
}

func isSixteenDigits(card string) bool {
	if len(card) != 16 {
		return false
	}
	for _, r := range card {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ClearOrder deletes the order's record iff the local vector clock is
// dominated by finalClock; otherwise the record is retained.
func (s *Service) ClearOrder(orderID string, finalClock vclock.Clock) (message string, cleared bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[orderID]
	if !ok {
		return "no such order", false
	}
	if finalClock.Dominates(st.clock) {
		delete(s.orders, orderID)
		return "Cleared", true
	}
	return "VC mismatch - not cleared", false
}
