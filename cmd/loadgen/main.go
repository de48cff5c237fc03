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

// Command loadgen drives a running orchestrator through spec.md §8's
// end-to-end scenarios. It is not part of the pipeline itself -- adapted
// from the teacher's tools/http-loadgen connection-reuse shape, but
// POSTing checkout orders instead of GETting a rate-limit key.
//
// Modes:
//   - conflict: N clients concurrently order 1 unit of the same title
//     (spec.md §8 scenario 1: conflicting orders against scarce stock).
//   - mixed: half the orders use one card number, half another, with
//     amounts in the 30-34 range (spec.md §8 scenario 2: mixed ok/fraud).
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"checkout/internal/order"
)

type modeType string

const (
	modeConflict modeType = "conflict"
	modeMixed    modeType = "mixed"
)

func main() {
	base := flag.String("base", "http://127.0.0.1:8080", "Orchestrator base URL")
	modeS := flag.String("mode", string(modeConflict), "Mode: conflict|mixed")
	n := flag.Int("n", 10, "Number of orders to submit")
	title := flag.String("title", "Conflicted Book", "Title to order in conflict mode")
	timeout := flag.Duration("timeout", 15*time.Second, "Per-request timeout")
	flag.Parse()

	mode := modeType(*modeS)
	if mode != modeConflict && mode != modeMixed {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeS)
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	orders := buildOrders(mode, *n, *title)

	var approved, rejected int64
	var wg sync.WaitGroup
	wg.Add(len(orders))
	start := time.Now()
	for _, o := range orders {
		go func(o order.Order) {
			defer wg.Done()
			status, err := submit(client, *base, o)
			if err != nil {
				fmt.Printf("order %s: error: %v\n", o.OrderID, err)
				return
			}
			if status == http.StatusOK {
				atomic.AddInt64(&approved, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
			fmt.Printf("order %s: status=%d\n", o.OrderID, status)
		}(o)
	}
	wg.Wait()

	fmt.Printf("LoadGen: mode=%s n=%d approved=%d rejected=%d duration=%s\n",
		mode, len(orders), approved, rejected, time.Since(start).Truncate(time.Millisecond))
}

func buildOrders(mode modeType, n int, title string) []order.Order {
	orders := make([]order.Order, 0, n)
	for i := 0; i < n; i++ {
		amount := 30.0 + float64(i%5)
		cardNumber := "4111111111111111"
		if mode == modeMixed && i%2 == 1 {
			cardNumber = "4000000000000002"
		}
		orders = append(orders, order.Order{
			OrderID:       "loadgen-" + strconv.Itoa(i),
			UserID:        "loadgen-user-" + strconv.Itoa(i),
			Amount:        amount,
			PaymentMethod: "credit_card",
			User: order.User{
				Name:    "Load Gen",
				Contact: "loadgen@example.com",
				Address: "1 Test Street",
			},
			Items:      []order.Item{{Name: title, Quantity: 1}},
			CreditCard: order.CreditCard{Number: cardNumber, ExpirationDate: "12/30", CVV: "123"},
		})
	}
	return orders
}

func submit(client *http.Client, base string, o order.Order) (int, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return 0, fmt.Errorf("encode order %s: %w", o.OrderID, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), client.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/checkout", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", o.OrderID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("POST /checkout for %s: %w", o.OrderID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
