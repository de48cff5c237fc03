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
	"sync"
	"testing"
	"time"
)

func TestScoreAddsPremiumBonus(t *testing.T) {
	if got := Score(10, 1, "premium"); got != 16 {
		t.Fatalf("expected premium score 16, got %v", got)
	}
	if got := Score(20, 2, "regular"); got != 22 {
		t.Fatalf("expected regular score 22, got %v", got)
	}
	if got := Score(10, 1, "regular"); got != 11 {
		t.Fatalf("expected regular score 11, got %v", got)
	}
}

// TestDequeueOrder is spec.md §8 scenario 5: enqueue (10,1,premium),
// (20,2,regular), (10,1,regular) → scores 16, 22, 11 → dequeue order
// middle, first, last.
func TestDequeueOrder(t *testing.T) {
	q := NewQueue()
	q.Enqueue("premium-order", Score(10, 1, "premium"), "Book A", 1)
	q.Enqueue("regular-big", Score(20, 2, "regular"), "Book A", 1)
	q.Enqueue("regular-small", Score(10, 1, "regular"), "Book A", 1)

	first := q.Dequeue()
	if first.OrderID != "regular-big" {
		t.Fatalf("expected regular-big first, got %s", first.OrderID)
	}
	second := q.Dequeue()
	if second.OrderID != "premium-order" {
		t.Fatalf("expected premium-order second, got %s", second.OrderID)
	}
	third := q.Dequeue()
	if third.OrderID != "regular-small" {
		t.Fatalf("expected regular-small third, got %s", third.OrderID)
	}
}

func TestDequeueEmptyQueueReturnsEmptyOrderID(t *testing.T) {
	q := NewQueue()
	entry := q.Dequeue()
	if entry.OrderID != "" {
		t.Fatalf("expected empty order id on empty queue, got %q", entry.OrderID)
	}
}

func TestDequeueBreaksTiesByEarlierTimestamp(t *testing.T) {
	q := NewQueue()
	q.Enqueue("first", 10, "Book A", 1)
	time.Sleep(time.Millisecond)
	q.Enqueue("second", 10, "Book A", 1)

	first := q.Dequeue()
	if first.OrderID != "first" {
		t.Fatalf("expected earlier-enqueued order to dequeue first on tie, got %s", first.OrderID)
	}
}

func TestConcurrentEnqueuePreservesCount(t *testing.T) {
	q := NewQueue()
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			q.Enqueue("order", float64(i), "Book A", 1)
		}(i)
	}
	wg.Wait()
	if got := q.Len(); got != n {
		t.Fatalf("expected queue length %d, got %d", n, got)
	}
}
