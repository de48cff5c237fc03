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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checkout/internal/config"
)

// newTestReplica stands up a replica behind a real httptest server and
// returns its HTTP address as a config.Peer, so other replicas in the test
// can reach it through the real HTTPElectionClient instead of a fake.
func newTestReplica(t *testing.T, id int) (*Replica, config.Peer) {
	t.Helper()
	replica := New(id, nil, NewHTTPElectionClient(), nil, nil)
	srv := NewServer(replica)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	addr := strings.TrimPrefix(ts.URL, "http://")
	idx := strings.LastIndex(addr, ":")
	return replica, config.Peer{ID: id, Host: addr[:idx], Port: addr[idx+1:]}
}

func TestHTTPElectionClientPingAgainstLiveServer(t *testing.T) {
	_, peer := newTestReplica(t, 1)
	client := NewHTTPElectionClient()
	if err := client.Ping(context.Background(), peer); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestHTTPElectionClientStartElectionAgainstLiveServer(t *testing.T) {
	_, higherPeer := newTestReplica(t, 5)
	_, lowerPeer := newTestReplica(t, 1)
	client := NewHTTPElectionClient()

	acked, err := client.StartElection(context.Background(), higherPeer, 3)
	if err != nil {
		t.Fatalf("StartElection to higher peer: %v", err)
	}
	if !acked {
		t.Fatalf("expected replica 5 to acknowledge outranking sender 3")
	}

	acked, err = client.StartElection(context.Background(), lowerPeer, 3)
	if err != nil {
		t.Fatalf("StartElection to lower peer: %v", err)
	}
	if acked {
		t.Fatalf("expected replica 1 not to acknowledge outranking sender 3")
	}
}

func TestHTTPElectionClientAnnounceLeaderAgainstLiveServer(t *testing.T) {
	follower, peer := newTestReplica(t, 2)
	client := NewHTTPElectionClient()

	if err := client.AnnounceLeader(context.Background(), peer, 7); err != nil {
		t.Fatalf("AnnounceLeader: %v", err)
	}
	if follower.LeaderID() != 7 {
		t.Fatalf("expected follower to adopt leader 7, got %d", follower.LeaderID())
	}
	if follower.IsLeader() {
		t.Fatalf("replica 2 should not believe itself leader when 7 was announced")
	}
	if follower.State() != StateFollower {
		t.Fatalf("expected state Follower, got %s", follower.State())
	}
}

func TestHTTPElectionClientPingUnreachablePeerFails(t *testing.T) {
	client := NewHTTPElectionClient()
	err := client.Ping(context.Background(), config.Peer{ID: 99, Host: "127.0.0.1", Port: "1"})
	if err == nil {
		t.Fatalf("expected Ping to an unreachable peer to fail")
	}
}
