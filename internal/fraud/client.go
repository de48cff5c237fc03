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

package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/pkg/vclock"
)

// Client is the orchestrator-side RPC client for the fraud checker.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the fraud checker at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("fraud %s: encode request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("fraud %s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fraud %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fraud %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fraud %s: decode response: %w", path, err)
	}
	return nil
}

// InitOrder calls the remote checker's InitOrder operation.
func (c *Client) InitOrder(ctx context.Context, orderID, userID string, amount float64) (bool, vclock.Clock, error) {
	var resp orderResponse
	err := c.post(ctx, "/init-order", initOrderRequest{OrderID: orderID, UserID: userID, Amount: amount}, &resp)
	return resp.Success, resp.Clock, err
}

// CheckUserFraud calls the remote checker's CheckUserFraud operation.
func (c *Client) CheckUserFraud(ctx context.Context, orderID string) (bool, vclock.Clock, error) {
	var resp orderResponse
	err := c.post(ctx, "/check-user-fraud", orderIDRequest{OrderID: orderID}, &resp)
	return resp.Success, resp.Clock, err
}

// CheckCardFraud calls the remote checker's CheckCardFraud operation.
func (c *Client) CheckCardFraud(ctx context.Context, orderID string) (bool, vclock.Clock, error) {
	var resp orderResponse
	err := c.post(ctx, "/check-card-fraud", orderIDRequest{OrderID: orderID}, &resp)
	return resp.Success, resp.Clock, err
}

// ClearOrder calls the remote checker's ClearOrder operation.
func (c *Client) ClearOrder(ctx context.Context, orderID string, finalClock vclock.Clock) (string, bool, error) {
	var resp clearOrderResponse
	err := c.post(ctx, "/clear-order", clearOrderRequest{OrderID: orderID, FinalClock: finalClock}, &resp)
	return resp.Message, resp.Cleared, err
}
