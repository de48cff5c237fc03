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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the orchestrator/executor-side RPC client for the order queue.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the queue service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// Enqueue calls the remote queue's Enqueue operation.
func (c *Client) Enqueue(ctx context.Context, orderID string, amount float64, itemCount int, userType, title string, quantity int64) error {
	body, err := json.Marshal(enqueueRequest{
		OrderID:   orderID,
		Amount:    amount,
		ItemCount: itemCount,
		UserType:  userType,
		Title:     title,
		Quantity:  quantity,
	})
	if err != nil {
		return fmt.Errorf("queue Enqueue: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enqueue", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("queue Enqueue: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("queue Enqueue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("queue Enqueue: status %d", resp.StatusCode)
	}
	return nil
}

// Dequeue calls the remote queue's Dequeue operation. An empty OrderID
// means the queue was empty.
func (c *Client) Dequeue(ctx context.Context) (orderID, title string, quantity int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/dequeue", nil)
	if err != nil {
		return "", "", 0, fmt.Errorf("queue Dequeue: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", 0, fmt.Errorf("queue Dequeue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", 0, fmt.Errorf("queue Dequeue: status %d", resp.StatusCode)
	}
	var out dequeueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", 0, fmt.Errorf("queue Dequeue: decode response: %w", err)
	}
	return out.OrderID, out.Title, out.Quantity, nil
}
