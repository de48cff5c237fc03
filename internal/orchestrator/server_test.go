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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout/internal/fraud"
	"checkout/internal/order"
	"checkout/internal/queue"
	"checkout/internal/suggestions"
	"checkout/internal/transaction"
)

// testBackends stands up live httptest servers for every collaborator so
// the orchestrator is exercised against the real RPC surface, the same
// pattern internal/fraud/server_test.go uses for its own client.
type testBackends struct {
	q *queue.Queue
}

func newTestServer(t *testing.T) (*httptest.Server, *testBackends) {
	t.Helper()

	fraudSvc := fraud.NewService()
	fraudMux := http.NewServeMux()
	fraud.NewServer(fraudSvc).RegisterRoutes(fraudMux)
	fraudTS := httptest.NewServer(fraudMux)
	t.Cleanup(fraudTS.Close)

	txSvc := transaction.NewService()
	txMux := http.NewServeMux()
	transaction.NewServer(txSvc).RegisterRoutes(txMux)
	txTS := httptest.NewServer(txMux)
	t.Cleanup(txTS.Close)

	suggestSvc := suggestions.NewService()
	suggestMux := http.NewServeMux()
	suggestions.NewServer(suggestSvc).RegisterRoutes(suggestMux)
	suggestTS := httptest.NewServer(suggestMux)
	t.Cleanup(suggestTS.Close)

	q := queue.NewQueue()
	queueMux := http.NewServeMux()
	queue.NewServer(q).RegisterRoutes(queueMux)
	queueTS := httptest.NewServer(queueMux)
	t.Cleanup(queueTS.Close)

	srv := NewServer(
		fraud.NewClient(fraudTS.URL),
		transaction.NewClient(txTS.URL),
		suggestions.NewClient(suggestTS.URL),
		queue.NewClient(queueTS.URL),
	)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return ts, &testBackends{q: q}
}

func validOrder(orderID string, amount float64) order.Order {
	return order.Order{
		OrderID:       orderID,
		UserID:        "user-1",
		Amount:        amount,
		PaymentMethod: "credit_card",
		User:          order.User{Name: "Ada Lovelace", Contact: "ada@example.com", Address: "1 Analytical Engine Way"},
		Items:         []order.Item{{Name: "Book A", Quantity: 1}},
		CreditCard:    order.CreditCard{Number: "4111 1111 1111 1111", ExpirationDate: "12/30", CVV: "123"},
	}
}

func postCheckout(t *testing.T, ts *httptest.Server, o order.Order) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}
	resp, err := ts.Client().Post(ts.URL+"/checkout", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /checkout: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestCheckoutMissingOrderIDRejects(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := postCheckout(t, ts, order.Order{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["status"] != "rejected" {
		t.Fatalf("expected rejected status, got %v", body)
	}
}

// TestCheckoutHighValueOrderIsRejectedAsFraud is spec.md §8 scenario 3.
func TestCheckoutHighValueOrderIsRejectedAsFraud(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := postCheckout(t, ts, validOrder("order-high-value", 1500))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["reason"] != "Fraud detected" {
		t.Fatalf("expected fraud rejection reason, got %v", body)
	}
}

// TestCheckoutShortCardIsRejected is spec.md §8 scenario 4.
func TestCheckoutShortCardIsRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	o := validOrder("order-short-card", 30)
	o.CreditCard.Number = "411111"
	resp, body := postCheckout(t, ts, o)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["reason"] != "Invalid credit card format" {
		t.Fatalf("expected card format rejection reason, got %v", body)
	}
}

// TestCheckoutApprovedOrderIsEnqueuedWithSuggestions covers the full
// success path: 200, suggestions populated, and the queue actually holds
// the order afterward.
func TestCheckoutApprovedOrderIsEnqueuedWithSuggestions(t *testing.T) {
	ts, backends := newTestServer(t)
	resp, body := postCheckout(t, ts, validOrder("order-ok", 30))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", resp.StatusCode, body)
	}
	if body["status"] != "Order Approved" {
		t.Fatalf("expected approval status, got %v", body)
	}
	books, ok := body["suggestedBooks"].([]any)
	if !ok || len(books) == 0 {
		t.Fatalf("expected non-empty suggestedBooks for Book A purchase, got %v", body["suggestedBooks"])
	}

	entry := backends.q.Dequeue()
	if entry.OrderID != "order-ok" {
		t.Fatalf("expected order-ok to have been enqueued, got %q", entry.OrderID)
	}
}
