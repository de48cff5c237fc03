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

package suggestions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/pkg/vclock"
)

// Server is the HTTP front for Service.
type Server struct {
	svc *Service
}

// NewServer wraps svc in an HTTP front.
func NewServer(svc *Service) *Server {
	return &Server{svc: svc}
}

// RegisterRoutes wires the single suggestions RPC from spec.md §6:
// GetSuggestions.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/suggestions", s.handleGetSuggestions)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Printf("[Suggestions] listening on %s\n", addr)
	return httpServer.ListenAndServe()
}

// OrderIDHeader is the RPC-metadata header carrying the calling order id,
// spec.md §4.4's "vector-clock entry... keyed by order_id when the caller
// supplies it via RPC metadata".
const OrderIDHeader = "X-Order-Id"

type suggestionsRequest struct {
	PurchasedBooks []string `json:"purchased_books"`
}

type suggestionsResponse struct {
	Titles []string     `json:"suggested_books"`
	Clock  vclock.Clock `json:"vector_clock"`
}

func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	orderID := r.Header.Get(OrderIDHeader)
	titles, clock := s.svc.GetSuggestions(orderID, req.PurchasedBooks)
	writeJSON(w, http.StatusOK, suggestionsResponse{Titles: titles, Clock: clock})
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
