package vclock

import "testing"

func TestNewSeedsSingleEntry(t *testing.T) {
	c := New("fraud_detection")
	if len(c) != 1 || c["fraud_detection"] != 1 {
		t.Fatalf("expected {fraud_detection:1}, got %v", c)
	}
}

func TestIncrementDoesNotMutateReceiver(t *testing.T) {
	c := New("fraud_detection")
	next := c.Increment("fraud_detection")

	if c["fraud_detection"] != 1 {
		t.Fatalf("original clock mutated: %v", c)
	}
	if next["fraud_detection"] != 2 {
		t.Fatalf("expected incremented clock to be 2, got %v", next)
	}
}

func TestIncrementOnlyTouchesOwnEntry(t *testing.T) {
	c := Clock{"fraud_detection": 3, "transaction_verification": 5}
	next := c.Increment("fraud_detection")
	if next["fraud_detection"] != 4 {
		t.Fatalf("expected fraud_detection=4, got %d", next["fraud_detection"])
	}
	if next["transaction_verification"] != 5 {
		t.Fatalf("expected transaction_verification unchanged at 5, got %d", next["transaction_verification"])
	}
}

func TestDominates(t *testing.T) {
	local := Clock{"fraud_detection": 3}
	cases := []struct {
		name  string
		final Clock
		want  bool
	}{
		{"equal", Clock{"fraud_detection": 3}, true},
		{"other ahead of local", Clock{"fraud_detection": 5}, false},
		{"other behind local", Clock{"fraud_detection": 2}, true},
		{"final names unknown key", Clock{"fraud_detection": 3, "transaction_verification": 1}, false},
		{"empty final", Clock{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := local.Dominates(tc.final); got != tc.want {
				t.Fatalf("Dominates(%v) against local %v = %v, want %v", tc.final, local, got, tc.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := Clock{"fraud_detection": 1}
	clone := c.Clone()
	clone["fraud_detection"] = 99
	if c["fraud_detection"] != 1 {
		t.Fatalf("clone mutation leaked into original: %v", c)
	}
}
