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

package orchestrator

import (
	"context"
	"fmt"

	"checkout/internal/order"
	"checkout/internal/transaction"
)

type fraudResult struct {
	fraudulent bool
}

type transactionResult struct {
	valid   bool
	message string
}

type suggestResult struct {
	titles []string
}

// runFraudFlow is spec.md §4.1's fraud flow: InitOrder, CheckUserFraud,
// CheckCardFraud issued sequentially. Any failure or transport error is
// surfaced as fraudulent (fail-closed, per spec.md §7).
func (s *Server) runFraudFlow(ctx context.Context, o order.Order) fraudResult {
	success, _, err := s.fraud.InitOrder(ctx, o.OrderID, o.UserID, o.Amount)
	if err != nil || !success {
		fmt.Printf("[Orchestrator] fraud InitOrder failed for %s: %v\n", o.OrderID, err)
		return fraudResult{fraudulent: true}
	}

	success, _, err = s.fraud.CheckUserFraud(ctx, o.OrderID)
	if err != nil || !success {
		fmt.Printf("[Orchestrator] CheckUserFraud failed for %s: %v\n", o.OrderID, err)
		return fraudResult{fraudulent: true}
	}

	success, _, err = s.fraud.CheckCardFraud(ctx, o.OrderID)
	if err != nil || !success {
		return fraudResult{fraudulent: true}
	}
	return fraudResult{fraudulent: false}
}

// runTransactionFlow is spec.md §4.1's transaction flow: normalize the
// card, then InitOrder, CheckBooks, CheckUserFields, CheckCardFormat
// sequentially. The first failure short-circuits the remaining sub-steps.
func (s *Server) runTransactionFlow(ctx context.Context, o order.Order) transactionResult {
	cardNumber := normalizeCardNumber(o.CreditCard.Number)
	user := transaction.UserFields{Name: o.User.Name, Contact: o.User.Contact, Address: o.User.Address}

	success, _, err := s.transaction.InitOrder(ctx, o.OrderID, user, o.BookNames(), cardNumber)
	if err != nil {
		fmt.Printf("[Orchestrator] transaction InitOrder failed for %s: %v\n", o.OrderID, err)
		return transactionResult{valid: false, message: "transaction service unavailable"}
	}
	if !success {
		return transactionResult{valid: false, message: "order not initialized"}
	}

	success, message, _, err := s.transaction.CheckBooks(ctx, o.OrderID)
	if err != nil {
		return transactionResult{valid: false, message: "transaction service unavailable"}
	}
	if !success {
		return transactionResult{valid: false, message: message}
	}

	success, message, _, err = s.transaction.CheckUserFields(ctx, o.OrderID)
	if err != nil {
		return transactionResult{valid: false, message: "transaction service unavailable"}
	}
	if !success {
		return transactionResult{valid: false, message: message}
	}

	success, message, _, err = s.transaction.CheckCardFormat(ctx, o.OrderID)
	if err != nil {
		return transactionResult{valid: false, message: "transaction service unavailable"}
	}
	if !success {
		return transactionResult{valid: false, message: message}
	}
	return transactionResult{valid: true}
}

// runSuggestionsFlow is spec.md §4.1's single suggestions call.
func (s *Server) runSuggestionsFlow(ctx context.Context, o order.Order) suggestResult {
	titles, _, err := s.suggestions.GetSuggestions(ctx, o.OrderID, o.BookNames())
	if err != nil {
		fmt.Printf("[Orchestrator] GetSuggestions failed for %s: %v\n", o.OrderID, err)
		return suggestResult{}
	}
	return suggestResult{titles: titles}
}
