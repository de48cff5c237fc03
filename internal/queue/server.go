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

package queue

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/internal/telemetry"
)

// Server is the HTTP front for Queue.
type Server struct {
	queue *Queue
}

// NewServer wraps queue in an HTTP front.
func NewServer(queue *Queue) *Server {
	return &Server{queue: queue}
}

// RegisterRoutes wires the queue RPC surface from spec.md §6: Enqueue,
// Dequeue.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/enqueue", s.handleEnqueue)
	mux.HandleFunc("/dequeue", s.handleDequeue)
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

	fmt.Printf("[Queue] listening on %s\n", addr)
	return httpServer.ListenAndServe()
}

type enqueueRequest struct {
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	ItemCount int     `json:"item_count"`
	UserType  string  `json:"user_type"`
	Title     string  `json:"title"`
	Quantity  int64   `json:"quantity"`
}

type enqueueResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	score := Score(req.Amount, req.ItemCount, req.UserType)
	s.queue.Enqueue(req.OrderID, score, req.Title, req.Quantity)
	telemetry.SetQueueDepth(s.queue.Len())
	writeJSON(w, http.StatusOK, enqueueResponse{Success: true})
}

type dequeueResponse struct {
	OrderID  string `json:"order_id"`
	Title    string `json:"title"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) handleDequeue(w http.ResponseWriter, r *http.Request) {
	entry := s.queue.Dequeue()
	telemetry.SetQueueDepth(s.queue.Len())
	writeJSON(w, http.StatusOK, dequeueResponse{OrderID: entry.OrderID, Title: entry.Title, Quantity: entry.Quantity})
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
