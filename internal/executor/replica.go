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

// Package executor implements the bully-elected executor replica: the
// startup peer-readiness probe, the election itself, and the leader-only
// loop that drains the priority queue against the inventory primary. The
// background-loop shape (ticker + stopChan + sync.WaitGroup) is grounded on
// the teacher's internal/ratelimiter/core.Worker.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout/internal/config"
	"checkout/internal/inventory"
	"checkout/internal/queue"
	"checkout/internal/telemetry"
)

// State is one of the four states spec.md §4.6 names.
type State string

const (
	StateBooting  State = "Booting"
	StateElecting State = "Electing"
	StateFollower State = "Follower"
	StateLeader   State = "Leader"
)

// readinessRetries and readinessInterval implement spec.md §4.6's
// peer-readiness wait: probe every peer up to 10 times at 2s intervals.
const (
	readinessRetries  = 10
	readinessInterval = 2 * time.Second
)

// executionInterval is the leader's queue-drain cadence.
const executionInterval = 5 * time.Second

// electionClient is the set of HTTPElectionClient methods the replica needs,
// narrowed so tests can substitute a fake without standing up real HTTP peers.
type electionClient interface {
	Ping(ctx context.Context, peer config.Peer) error
	StartElection(ctx context.Context, peer config.Peer, senderID int) (acknowledged bool, err error)
	AnnounceLeader(ctx context.Context, peer config.Peer, leaderID int) error
}

// Replica is one executor node participating in bully election. All
// mutable state is guarded by mu; there is no process-wide singleton.
type Replica struct {
	mu       sync.Mutex
	state    State
	replicaID int
	peers    []config.Peer
	leaderID int
	isLeader bool

	client    electionClient
	queue     *queue.Client
	inventory *inventory.Client

	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a Replica for replicaID among peers (peers must not include
// self). queueClient and inventoryClient are only exercised once this
// replica becomes leader.
func New(replicaID int, peers []config.Peer, client electionClient, queueClient *queue.Client, inventoryClient *inventory.Client) *Replica {
	return &Replica{
		state:     StateBooting,
		replicaID: replicaID,
		peers:     peers,
		client:    client,
		queue:     queueClient,
		inventory: inventoryClient,
		stopCh:    make(chan struct{}),
	}
}

// ReplicaID returns this replica's configured id.
func (r *Replica) ReplicaID() int { return r.replicaID }

// State reports the current state machine position.
func (r *Replica) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// IsLeader reports whether this replica currently believes it is leader.
func (r *Replica) IsLeader() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isLeader
}

// LeaderID returns the last known leader id, or 0 if none has been
// announced yet.
func (r *Replica) LeaderID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaderID
}

// Start runs the full Booting -> Electing -> {Leader,Follower} startup
// sequence synchronously, then (if this replica won) launches the
// leader-only execution loop in the background. Start returns once the
// election itself has settled; the execution loop, if started, runs until
// Stop is called.
func (r *Replica) Start(ctx context.Context) {
	r.waitForPeerReadiness(ctx)
	r.runElection(ctx)
}

// Stop halts the leader's execution loop, if running. Safe to call on a
// follower or on a replica that never started the loop.
func (r *Replica) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

// waitForPeerReadiness probes every peer's RPC channel for readiness,
// retrying up to readinessRetries times at readinessInterval, per
// spec.md §4.6 step 1. It proceeds once every peer answers, or once
// retries are exhausted -- whichever comes first.
func (r *Replica) waitForPeerReadiness(ctx context.Context) {
	r.setState(StateBooting)
	for attempt := 0; attempt < readinessRetries; attempt++ {
		if r.allPeersReady(ctx) {
			fmt.Printf("[Executor %d] all peers ready after %d attempt(s)\n", r.replicaID, attempt+1)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(readinessInterval):
		}
	}
	fmt.Printf("[Executor %d] proceeding after exhausting readiness retries\n", r.replicaID)
}

func (r *Replica) allPeersReady(ctx context.Context) bool {
	for _, p := range r.peers {
		if err := r.client.Ping(ctx, p); err != nil {
			return false
		}
	}
	return true
}

// runElection implements spec.md §4.6 steps 2-4: send StartElection to
// every higher-id peer; yield if any answers acknowledged=true; otherwise
// declare self leader and broadcast AnnounceLeader.
func (r *Replica) runElection(ctx context.Context) {
	r.setState(StateElecting)
	telemetry.ObserveElectionStarted()

	higherAcked := false
	for _, p := range r.peers {
		if p.ID <= r.replicaID {
			continue
		}
		acked, err := r.client.StartElection(ctx, p, r.replicaID)
		if err != nil {
			fmt.Printf("[Executor %d] StartElection to peer %d failed: %v\n", r.replicaID, p.ID, err)
			continue
		}
		if acked {
			higherAcked = true
		}
	}

	if higherAcked {
		fmt.Printf("[Executor %d] yielding to a higher peer, awaiting AnnounceLeader\n", r.replicaID)
		r.setState(StateFollower)
		return
	}

	fmt.Printf("[Executor %d] no higher peer acknowledged, declaring self leader\n", r.replicaID)
	r.becomeLeader(ctx)
}

func (r *Replica) becomeLeader(ctx context.Context) {
	r.mu.Lock()
	r.leaderID = r.replicaID
	r.isLeader = true
	r.state = StateLeader
	r.mu.Unlock()

	for _, p := range r.peers {
		if err := r.client.AnnounceLeader(ctx, p, r.replicaID); err != nil {
			fmt.Printf("[Executor %d] AnnounceLeader to peer %d failed: %v\n", r.replicaID, p.ID, err)
		}
	}

	r.runExecutionLoop(ctx)
}

// HandleStartElection is the StartElection handler from spec.md §4.6 step 3:
// reply acknowledged=true iff this replica outranks the sender.
func (r *Replica) HandleStartElection(senderID int) (acknowledged bool) {
	return r.replicaID > senderID
}

// HandleAnnounceLeader is the AnnounceLeader handler from spec.md §4.6 step
// 4: adopt the announced leader id and update is_leader accordingly.
func (r *Replica) HandleAnnounceLeader(ctx context.Context, leaderID int) {
	r.mu.Lock()
	r.leaderID = leaderID
	wasLeader := r.isLeader
	r.isLeader = leaderID == r.replicaID
	becameLeader := r.isLeader && !wasLeader
	if r.isLeader {
		r.state = StateLeader
	} else {
		r.state = StateFollower
	}
	r.mu.Unlock()

	fmt.Printf("[Executor %d] leader announced: %d\n", r.replicaID, leaderID)
	if becameLeader {
		r.runExecutionLoop(ctx)
	}
}

// runExecutionLoop is the leader-only loop from spec.md §4.6: every 5
// seconds, dequeue one order and attempt to decrement its stock.
func (r *Replica) runExecutionLoop(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(executionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.executeOneOrder(ctx)
			}
		}
	}()
}

func (r *Replica) executeOneOrder(ctx context.Context) {
	orderID, title, quantity, err := r.queue.Dequeue(ctx)
	if err != nil {
		fmt.Printf("[Executor %d] Dequeue failed: %v\n", r.replicaID, err)
		return
	}
	if orderID == "" {
		fmt.Printf("[Executor %d] Queue is empty\n", r.replicaID)
		return
	}

	if stock, err := r.inventory.Read(ctx, title); err == nil {
		fmt.Printf("[Executor %d] Executing order %s: %s has %d in stock\n", r.replicaID, orderID, title, stock)
	}

	success, remaining, err := r.inventory.DecrementStock(ctx, title, quantity)
	if err != nil {
		fmt.Printf("[Executor %d] DecrementStock for order %s failed: %v\n", r.replicaID, orderID, err)
		return
	}
	telemetry.ObserveDecrement(success)
	if success {
		fmt.Printf("[Executor %d] order %s executed, %s remaining=%d\n", r.replicaID, orderID, title, remaining)
		return
	}
	fmt.Printf("[Executor %d] order %s out of stock for %s\n", r.replicaID, orderID, title)
}

func (r *Replica) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
