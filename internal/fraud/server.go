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

package fraud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/pkg/vclock"
)

// Server is the HTTP front for Service, grounded on the teacher's api.Server.
type Server struct {
	svc *Service
}

// NewServer wraps svc in an HTTP front.
func NewServer(svc *Service) *Server {
	return &Server{svc: svc}
}

// RegisterRoutes wires the fraud RPC surface from spec.md §6: InitOrder,
// CheckUserFraud, CheckCardFraud, ClearOrder.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/init-order", s.handleInitOrder)
	mux.HandleFunc("/check-user-fraud", s.handleCheckUserFraud)
	mux.HandleFunc("/check-card-fraud", s.handleCheckCardFraud)
	mux.HandleFunc("/clear-order", s.handleClearOrder)
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

	fmt.Printf("[Fraud] listening on %s\n", addr)
	return httpServer.ListenAndServe()
}

type initOrderRequest struct {
	OrderID string  `json:"order_id"`
	UserID  string  `json:"user_id"`
	Amount  float64 `json:"amount"`
}

type orderResponse struct {
	Success bool         `json:"is_success"`
	Clock   vclock.Clock `json:"vector_clock"`
}

func (s *Server) handleInitOrder(w http.ResponseWriter, r *http.Request) {
	var req initOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderID == "" {
		http.Error(w, "order_id is required", http.StatusBadRequest)
		return
	}
	success, clock := s.svc.InitOrder(req.OrderID, req.UserID, req.Amount)
	writeJSON(w, http.StatusOK, orderResponse{Success: success, Clock: clock})
}

type orderIDRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) handleCheckUserFraud(w http.ResponseWriter, r *http.Request) {
	var req orderIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	success, clock := s.svc.CheckUserFraud(req.OrderID)
	writeJSON(w, http.StatusOK, orderResponse{Success: success, Clock: clock})
}

func (s *Server) handleCheckCardFraud(w http.ResponseWriter, r *http.Request) {
	var req orderIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	success, clock := s.svc.CheckCardFraud(req.OrderID)
	writeJSON(w, http.StatusOK, orderResponse{Success: success, Clock: clock})
}

type clearOrderRequest struct {
	OrderID    string       `json:"order_id"`
	FinalClock vclock.Clock `json:"final_vector_clock"`
}

type clearOrderResponse struct {
	Message string `json:"message"`
	Cleared bool   `json:"cleared"`
}

func (s *Server) handleClearOrder(w http.ResponseWriter, r *http.Request) {
	var req clearOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	message, cleared := s.svc.ClearOrder(req.OrderID, req.FinalClock)
	writeJSON(w, http.StatusOK, clearOrderResponse{Message: message, Cleared: cleared})
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
