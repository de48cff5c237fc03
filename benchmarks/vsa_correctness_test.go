package benchmarks

import (
	"sync"
	"sync/atomic"
	"testing"

	"checkout/pkg/vsa"
)

func TestTryConsumeNeverOversubscribes(t *testing.T) {
	v := vsa.New(100)
	if !v.TryConsume(30) {
		t.Fatal("consume within stock should succeed")
	}
	if got := v.Available(); got != 70 {
		t.Fatalf("avail=70, got %d", got)
	}
	if v.TryConsume(200) {
		t.Fatal("should not oversubscribe beyond available stock")
	}
	if got := v.Available(); got != 70 {
		t.Fatalf("a failed consume must not change availability, got %d", got)
	}
}

// TestTryConsumeConcurrentNeverOversellsStock is the inventory invariant
// spec.md §8 scenario 1 exercises at the service level: many concurrent
// consumers racing for scarce stock must never jointly consume more than
// was available.
func TestTryConsumeConcurrentNeverOversellsStock(t *testing.T) {
	const stock = 10
	const attempts = 100
	v := vsa.New(stock)

	var wg sync.WaitGroup
	var succeeded atomic.Int64
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if v.TryConsume(1) {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	if succeeded.Load() != stock {
		t.Fatalf("expected exactly %d successful consumes, got %d", stock, succeeded.Load())
	}
	if got := v.Available(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}
