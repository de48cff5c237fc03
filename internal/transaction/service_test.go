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

package transaction

import "testing"

func TestCheckBooksRequiresNonEmptyList(t *testing.T) {
	svc := NewService()
	svc.InitOrder("order-1", UserFields{Name: "a", Contact: "b", Address: "c"}, nil, "4111111111111111")
	success, message, clock := svc.CheckBooks("order-1")
	if success {
		t.Fatalf("expected empty book list to fail")
	}
	if message != "No books in order" {
		t.Fatalf("unexpected message: %q", message)
	}
	if clock[ServiceID] != 2 {
		t.Fatalf("expected clock incremented to 2 regardless of outcome, got %v", clock)
	}

	svc.InitOrder("order-2", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "4111111111111111")
	success, _, _ = svc.CheckBooks("order-2")
	if !success {
		t.Fatalf("expected non-empty book list to pass")
	}
}

func TestCheckUserFieldsRequiresAllThree(t *testing.T) {
	svc := NewService()
	svc.InitOrder("order-1", UserFields{Name: "a", Contact: "", Address: "c"}, []string{"Book A"}, "4111111111111111")
	success, message, _ := svc.CheckUserFields("order-1")
	if success {
		t.Fatalf("expected missing contact to fail")
	}
	if message != "Missing user fields" {
		t.Fatalf("unexpected message: %q", message)
	}

	svc.InitOrder("order-2", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "4111111111111111")
	success, _, _ = svc.CheckUserFields("order-2")
	if !success {
		t.Fatalf("expected complete user fields to pass")
	}
}

func TestCheckCardFormatRequiresSixteenDigits(t *testing.T) {
	svc := NewService()
	svc.InitOrder("short", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "411111")
	success, message, _ := svc.CheckCardFormat("short")
	if success {
		t.Fatalf("expected short card number to fail")
	}
	if message != "Invalid credit card format" {
		t.Fatalf("unexpected message: %q", message)
	}

	svc.InitOrder("valid", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "4111111111111111")
	success, _, _ = svc.CheckCardFormat("valid")
	if !success {
		t.Fatalf("expected 16-digit card number to pass")
	}

	svc.InitOrder("nondigit", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "411111111111111a")
	success, _, _ = svc.CheckCardFormat("nondigit")
	if success {
		t.Fatalf("expected non-digit characters to fail")
	}
}

func TestTransactionClearOrderRequiresDomination(t *testing.T) {
	svc := NewService()
	svc.InitOrder("order-1", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "4111111111111111")
	_, _, clock := svc.CheckBooks("order-1")

	_, cleared := svc.ClearOrder("order-1", map[string]int64{ServiceID: 1})
	if cleared {
		t.Fatalf("expected clear to fail against a stale final clock")
	}

	message, cleared := svc.ClearOrder("order-1", clock)
	if !cleared || message != "Cleared" {
		t.Fatalf("expected clear to succeed against the current clock, got message=%q cleared=%v", message, cleared)
	}
}
