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

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	svc := NewService()
	srv := NewServer(svc)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, NewClient(ts.URL)
}

func TestClientFullFlowAgainstLiveServer(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()
	user := UserFields{Name: "Ada", Contact: "ada@example.com", Address: "1 Infinite Loop"}

	success, clock, err := client.InitOrder(ctx, "order-1", user, []string{"Book A"}, "4111111111111111")
	if err != nil {
		t.Fatalf("InitOrder: %v", err)
	}
	if !success || clock[ServiceID] != 1 {
		t.Fatalf("unexpected InitOrder result: success=%v clock=%v", success, clock)
	}

	success, _, clock, err = client.CheckBooks(ctx, "order-1")
	if err != nil || !success {
		t.Fatalf("CheckBooks: success=%v err=%v", success, err)
	}

	success, _, clock, err = client.CheckUserFields(ctx, "order-1")
	if err != nil || !success {
		t.Fatalf("CheckUserFields: success=%v err=%v", success, err)
	}

	success, message, clock, err := client.CheckCardFormat(ctx, "order-1")
	if err != nil || !success {
		t.Fatalf("CheckCardFormat: success=%v message=%q err=%v", success, message, err)
	}

	msg, cleared, err := client.ClearOrder(ctx, "order-1", clock)
	if err != nil {
		t.Fatalf("ClearOrder: %v", err)
	}
	if !cleared || msg != "Cleared" {
		t.Fatalf("unexpected ClearOrder result: message=%q cleared=%v", msg, cleared)
	}
}

func TestShortCardFormatReturnsExpectedMessage(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	client.InitOrder(ctx, "order-1", UserFields{Name: "a", Contact: "b", Address: "c"}, []string{"Book A"}, "411111")
	success, message, _, err := client.CheckCardFormat(ctx, "order-1")
	if err != nil {
		t.Fatalf("CheckCardFormat: %v", err)
	}
	if success {
		t.Fatalf("expected short card to fail format check")
	}
	if message != "Invalid credit card format" {
		t.Fatalf("unexpected message: %q", message)
	}
}
