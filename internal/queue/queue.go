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

// Package queue holds the in-memory priority order queue: a container/heap
// max-heap guarded by a single mutex, matching spec.md §4.5's "single
// in-memory ordered multiset" and the single-mutex-per-shared-resource
// policy every other service in this pipeline follows.
package queue

import (
	"container/heap"
	"sync"
	"time"
)

// PremiumBonus is added to the priority score of premium-user orders.
const PremiumBonus = 5

// Entry is one order waiting for the executor to drain it.
type Entry struct {
	OrderID       string
	PriorityScore float64
	EnqueueTime   time.Time
	Title         string
	Quantity      int64
}

// entryHeap implements container/heap.Interface as a max-heap on
// PriorityScore, breaking ties by earlier EnqueueTime.
type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].PriorityScore != h[j].PriorityScore {
		return h[i].PriorityScore > h[j].PriorityScore
	}
	return h[i].EnqueueTime.Before(h[j].EnqueueTime)
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is the priority order queue. All operations are serialized under a
// single mutex, per spec.md §5.
type Queue struct {
	mu sync.Mutex
	h  entryHeap
}

// NewQueue creates an empty priority queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Score computes spec.md §3's priority score: amount + item count, plus
// PremiumBonus for premium users.
func Score(amount float64, itemCount int, userType string) float64 {
	score := amount + float64(itemCount)
	if userType == "premium" {
		score += PremiumBonus
	}
	return score
}

// Enqueue inserts an order with the given already-computed priority score.
// Enqueue never rejects.
func (q *Queue) Enqueue(orderID string, score float64, title string, quantity int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.h, &Entry{
		OrderID:       orderID,
		PriorityScore: score,
		EnqueueTime:   time.Now(),
		Title:         title,
		Quantity:      quantity,
	})
}

// Dequeue removes and returns the highest-priority entry, or a zero Entry
// with an empty OrderID if the queue is empty.
func (q *Queue) Dequeue() Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.h.Len() == 0 {
		return Entry{}
	}
	entry := heap.Pop(&q.h).(*Entry)
	return *entry
}

// Len reports the number of orders currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}
