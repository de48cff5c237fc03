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

package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Server is the HTTP front for a Replica, exposing the StartElection and
// AnnounceLeader RPC handlers from spec.md §4.6, grounded on the teacher's
// api.Server.
type Server struct {
	replica *Replica
}

// NewServer wraps replica in an HTTP front.
func NewServer(replica *Replica) *Server {
	return &Server{replica: replica}
}

// RegisterRoutes wires the executor RPC surface from spec.md §6:
// StartElection, AnnounceLeader, plus a readiness probe peers use during
// the startup wait.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/start-election", s.handleStartElection)
	mux.HandleFunc("/announce-leader", s.handleAnnounceLeader)
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

	fmt.Printf("[Executor %d] listening on %s\n", s.replica.ReplicaID(), addr)
	return httpServer.ListenAndServe()
}

type electionRequest struct {
	SenderID int `json:"sender_id"`
}

type electionResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

func (s *Server) handleStartElection(w http.ResponseWriter, r *http.Request) {
	var req electionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	acknowledged := s.replica.HandleStartElection(req.SenderID)
	writeJSON(w, http.StatusOK, electionResponse{Acknowledged: acknowledged})
}

type announceRequest struct {
	LeaderID int `json:"leader_id"`
}

type ackResponse struct {
	Received bool `json:"received"`
}

func (s *Server) handleAnnounceLeader(w http.ResponseWriter, r *http.Request) {
	var req announceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.replica.HandleAnnounceLeader(context.Background(), req.LeaderID)
	writeJSON(w, http.StatusOK, ackResponse{Received: true})
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
