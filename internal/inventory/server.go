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

package inventory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Role distinguishes the primary node (accepts Write, replicates to backups)
// from a backup node (only accepts ReplicateWrite from its primary).
type Role string

const (
	RolePrimary Role = "primary"
	RoleBackup  Role = "backup"
)

// Server is the HTTP front for a Store, configured as either a primary or a
// backup node. Grounded on the teacher's api.Server: a struct holding its
// collaborators plus RegisterRoutes/ListenAndServe.
type Server struct {
	store       *Store
	role        Role
	backupPeers []string // host:port, primary only
	replicateTO time.Duration
}

// NewServer creates a Server for the given role. backupPeers is only
// consulted when role is RolePrimary.
func NewServer(store *Store, role Role, backupPeers []string) *Server {
	return &Server{
		store:       store,
		role:        role,
		backupPeers: backupPeers,
		replicateTO: 5 * time.Second,
	}
}

// RegisterRoutes wires the inventory RPC surface from spec.md §6: Read,
// DecrementStock, Write, ReplicateWrite.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/read", s.handleRead)
	mux.HandleFunc("/decrement", s.handleDecrement)
	mux.HandleFunc("/write", s.handleWrite)
	mux.HandleFunc("/replicate", s.handleReplicate)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

// ListenAndServe starts the HTTP server on addr, with the same timeouts the
// teacher's api.Server configures.
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

	fmt.Printf("[Inventory] listening on %s as %s\n", addr, s.role)
	return httpServer.ListenAndServe()
}

type readResponse struct {
	Stock int64 `json:"stock"`
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, readResponse{Stock: s.store.Read(title)})
}

type decrementRequest struct {
	Title    string `json:"title"`
	Quantity int64  `json:"quantity"`
}

type decrementResponse struct {
	Success   bool  `json:"success"`
	Remaining int64 `json:"remaining"`
}

func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	var req decrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Quantity <= 0 {
		http.Error(w, "title and positive quantity are required", http.StatusBadRequest)
		return
	}
	success, remaining := s.store.DecrementStock(req.Title, req.Quantity)
	writeJSON(w, http.StatusOK, decrementResponse{Success: success, Remaining: remaining})
}

type writeRequest struct {
	Title    string `json:"title"`
	NewStock int64  `json:"newStock"`
}

// handleWrite is primary-only: it applies the write locally, then
// synchronously replicates to every backup peer. A failed backup is logged
// but does not fail the primary write, per spec.md §4.7.
func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	if s.role != RolePrimary {
		http.Error(w, "write is only accepted on the primary", http.StatusForbidden)
		return
	}
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	s.store.Write(req.Title, req.NewStock)
	s.replicate(req.Title, req.NewStock)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) replicate(title string, newStock int64) {
	for _, peer := range s.backupPeers {
		if err := ReplicateTo(peer, title, newStock, s.replicateTO); err != nil {
			fmt.Printf("[Inventory] replicate to backup %s failed: %v\n", peer, err)
		}
	}
}

// handleReplicate is backup-only: unconditional overwrite, no further
// propagation.
func (s *Server) handleReplicate(w http.ResponseWriter, r *http.Request) {
	if s.role != RoleBackup {
		http.Error(w, "replicate is only accepted on a backup", http.StatusForbidden)
		return
	}
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.store.ReplicateWrite(req.Title, req.NewStock)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK (%s)", s.role)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
