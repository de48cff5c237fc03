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

// Package orchestrator implements the single client-facing entry point,
// POST /checkout: it fans the order out to the fraud and transaction
// checkers and the suggestions service concurrently, short-circuits on a
// fraud rejection, and enqueues into the priority queue on full success.
// Grounded on the teacher's internal/ratelimiter/api.Server: a struct
// holding its RPC collaborators, a RegisterRoutes method, and a
// ListenAndServe method with explicit timeouts.
package orchestrator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"checkout/internal/fraud"
	"checkout/internal/order"
	"checkout/internal/queue"
	"checkout/internal/suggestions"
	"checkout/internal/telemetry"
	"checkout/internal/transaction"
)

// Server fans a checkout request out to its collaborators and applies the
// short-circuit semantics spec.md §4.1 describes.
type Server struct {
	fraud       *fraud.Client
	transaction *transaction.Client
	suggestions *suggestions.Client
	queue       *queue.Client
}

// NewServer wires an orchestrator Server to its RPC collaborators.
func NewServer(fraudClient *fraud.Client, transactionClient *transaction.Client, suggestionsClient *suggestions.Client, queueClient *queue.Client) *Server {
	return &Server{
		fraud:       fraudClient,
		transaction: transactionClient,
		suggestions: suggestionsClient,
		queue:       queueClient,
	}
}

// RegisterRoutes wires the single client-facing operation from spec.md §4.1.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/checkout", s.handleCheckout)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

// ListenAndServe starts the HTTP server on addr, with the same read and
// idle timeouts as the other services in this pipeline and a 15s write
// timeout (the others use 10s).
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Printf("[Orchestrator] listening on %s\n", addr)
	return httpServer.ListenAndServe()
}

type suggestedBook struct {
	Title string `json:"title"`
}

type approvedResponse struct {
	OrderID        string          `json:"orderId"`
	Status         string          `json:"status"`
	SuggestedBooks []suggestedBook `json:"suggestedBooks"`
}

type rejectedResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// handleCheckout is spec.md §4.1's POST /checkout contract.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if o.OrderID == "" {
		reject(w, http.StatusBadRequest, "order_id is required")
		telemetry.ObserveCheckoutOutcome("missing_order_id")
		return
	}

	ctx := r.Context()

	// Fan out fraud, transaction and suggestions concurrently; each flow
	// reports on its own completion signal, per spec.md §5.
	fraudDone := make(chan fraudResult, 1)
	txDone := make(chan transactionResult, 1)
	suggestDone := make(chan suggestResult, 1)

	go func() { fraudDone <- s.runFraudFlow(ctx, o) }()
	go func() { txDone <- s.runTransactionFlow(ctx, o) }()
	go func() { suggestDone <- s.runSuggestionsFlow(ctx, o) }()

	// Suspend on fraud first; short-circuit on a fraudulent verdict without
	// waiting for transaction or suggestions to finish, per spec.md §4.1.
	fraudRes := <-fraudDone
	if fraudRes.fraudulent {
		reject(w, http.StatusBadRequest, "Fraud detected")
		telemetry.ObserveCheckoutOutcome("rejected_fraud")
		return
	}

	txRes := <-txDone
	if !txRes.valid {
		reject(w, http.StatusBadRequest, txRes.message)
		telemetry.ObserveCheckoutOutcome("rejected_transaction")
		return
	}

	suggestRes := <-suggestDone

	title := primaryTitle(o)
	quantity := primaryQuantity(o)
	if err := s.queue.Enqueue(ctx, o.OrderID, o.Amount, o.ItemCount(), o.UserType(), title, quantity); err != nil {
		http.Error(w, "failed to enqueue order", http.StatusInternalServerError)
		telemetry.ObserveCheckoutOutcome("enqueue_failed")
		return
	}

	books := make([]suggestedBook, len(suggestRes.titles))
	for i, title := range suggestRes.titles {
		books[i] = suggestedBook{Title: title}
	}
	writeJSON(w, http.StatusOK, approvedResponse{
		OrderID:        o.OrderID,
		Status:         "Order Approved",
		SuggestedBooks: books,
	})
	telemetry.ObserveCheckoutOutcome("approved")
}

// primaryTitle and primaryQuantity pick the queue entry's stock-bearing
// item: the first line item, matching the single-title executor/inventory
// shape spec.md §3's Priority Queue Entry assumes. For an order with no
// items they return "" and 0; such an order never reaches the queue, since
// the transaction flow's CheckBooks rejects an empty book list first.
func primaryTitle(o order.Order) string {
	if len(o.Items) == 0 {
		return ""
	}
	return o.Items[0].Name
}

func primaryQuantity(o order.Order) int64 {
	if len(o.Items) == 0 {
		return 0
	}
	return int64(o.Items[0].Quantity)
}

// normalizeCardNumber strips spaces and dashes, per spec.md §4.1's
// transaction flow normalization step.
func normalizeCardNumber(raw string) string {
	r := strings.NewReplacer(" ", "", "-", "")
	return r.Replace(raw)
}

func reject(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, rejectedResponse{Status: "rejected", Reason: reason})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
