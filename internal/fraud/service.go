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

// Package fraud implements the stateful, vector-clocked fraud checker: one
// service-wide mutex guards a map of per-order state. The map-of-per-key-state
// shape follows the teacher's core.Store, but behind one plain mutex instead
// of its sync.Map, because invariant preservation across orders matters more
// than per-order sharding.
package fraud

import (
	"sync"

	"checkout/pkg/vclock"
)

// ServiceID is this checker's entry in every order's vector clock.
const ServiceID = "fraud_detection"

// FraudThreshold is the amount above which CheckCardFraud reports fraud.
const FraudThreshold = 1000

type orderState struct {
	userID string
	amount float64
	clock  vclock.Clock
}

// Service holds the in-memory per-order fraud state.
type Service struct {
	mu     sync.Mutex
	orders map[string]*orderState
}

// NewService creates an empty fraud checker.
func NewService() *Service {
	return &Service{orders: make(map[string]*orderState)}
}

// InitOrder creates the per-order record and seeds its vector clock to
// {fraud_detection: 1}.
func (s *Service) InitOrder(orderID, userID string, amount float64) (success bool, clock vclock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := vclock.New(ServiceID)
	s.orders[orderID] = &orderState{userID: userID, amount: amount, clock: c}
	return true, c.Clone()
}

// CheckUserFraud accepts unconditionally once a record exists, incrementing
// the order's vector clock.
func (s *Service) CheckUserFraud(orderID string) (success bool, clock vclock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[orderID]
	if !ok {
		return false, nil
	}
	st.clock = st.clock.Increment(ServiceID)
	return true, st.clock.Clone()
}

// CheckCardFraud flags an order as fraudulent when its amount exceeds
// FraudThreshold, incrementing the order's vector clock regardless of outcome.
func (s *Service) CheckCardFraud(orderID string) (success bool, clock vclock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[orderID]
	if !ok {
		return false, nil
	}
	st.clock = st.clock.Increment(ServiceID)
	isFraud := st.amount > FraudThreshold
	return !isFraud, st.clock.Clone()
}

// ClearOrder deletes the order's record iff the local vector clock is
// dominated by finalClock (every entry at most as large); otherwise the
// record is retained and the mismatch is reported.
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
