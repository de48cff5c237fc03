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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/internal/config"
)

// HTTPElectionClient is the real, network-backed electionClient: it probes
// peer readiness and issues StartElection/AnnounceLeader RPCs over HTTP.
type HTTPElectionClient struct {
	http *http.Client
}

// NewHTTPElectionClient builds an HTTPElectionClient with spec.md §5's
// 10-15s RPC timeout budget.
func NewHTTPElectionClient() *HTTPElectionClient {
	return &HTTPElectionClient{http: &http.Client{Timeout: 10 * time.Second}}
}

// Ping probes a peer's readiness via its health endpoint, spec.md §4.6
// step 1's "probe every peer's RPC channel for readiness".
func (c *HTTPElectionClient) Ping(ctx context.Context, peer config.Peer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+peer.Addr()+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("ping peer %d: %w", peer.ID, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping peer %d: %w", peer.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping peer %d: status %d", peer.ID, resp.StatusCode)
	}
	return nil
}

// StartElection sends ElectionRequest{sender_id} to peer and reports
// whether it acknowledged outranking the sender.
func (c *HTTPElectionClient) StartElection(ctx context.Context, peer config.Peer, senderID int) (bool, error) {
	body, err := json.Marshal(electionRequest{SenderID: senderID})
	if err != nil {
		return false, fmt.Errorf("StartElection to peer %d: encode request: %w", peer.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+peer.Addr()+"/start-election", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("StartElection to peer %d: build request: %w", peer.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("StartElection to peer %d: %w", peer.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("StartElection to peer %d: status %d", peer.ID, resp.StatusCode)
	}
	var out electionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("StartElection to peer %d: decode response: %w", peer.ID, err)
	}
	return out.Acknowledged, nil
}

// AnnounceLeader broadcasts LeaderAnnouncement{leader_id} to peer.
func (c *HTTPElectionClient) AnnounceLeader(ctx context.Context, peer config.Peer, leaderID int) error {
	body, err := json.Marshal(announceRequest{LeaderID: leaderID})
	if err != nil {
		return fmt.Errorf("AnnounceLeader to peer %d: encode request: %w", peer.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+peer.Addr()+"/announce-leader", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("AnnounceLeader to peer %d: build request: %w", peer.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("AnnounceLeader to peer %d: %w", peer.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AnnounceLeader to peer %d: status %d", peer.ID, resp.StatusCode)
	}
	return nil
}
