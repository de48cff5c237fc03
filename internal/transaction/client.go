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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/pkg/vclock"
)

// Client is the orchestrator-side RPC client for the transaction checker.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the transaction checker at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("transaction %s: encode request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("transaction %s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transaction %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transaction %s: decode response: %w", path, err)
	}
	return nil
}

// InitOrder calls the remote checker's InitOrder operation.
func (c *Client) InitOrder(ctx context.Context, orderID string, user UserFields, books []string, cardNumber string) (bool, vclock.Clock, error) {
	var resp initOrderResponse
	err := c.post(ctx, "/init-order", initOrderRequest{OrderID: orderID, User: user, Books: books, CardNumber: cardNumber}, &resp)
	return resp.Success, resp.Clock, err
}

// CheckBooks calls the remote checker's CheckBooks operation.
func (c *Client) CheckBooks(ctx context.Context, orderID string) (bool, string, vclock.Clock, error) {
	var resp checkResponse
	err := c.post(ctx, "/check-books", orderIDRequest{OrderID: orderID}, &resp)
	return resp.Success, resp.Message, resp.Clock, err
}

// CheckUserFields calls the remote checker's CheckUserFields operation.
func (c *Client) CheckUserFields(ctx context.Context, orderID string) (bool, string, vclock.Clock, error) {
	var resp checkResponse
	err := c.post(ctx, "/check-user-fields", orderIDRequest{OrderID: orderID}, &resp)
	return resp.Success, resp.Message, resp.Clock, err
}

// CheckCardFormat calls the remote checker's CheckCardFormat operation.
func (c *Client) CheckCardFormat(ctx context.Context, orderID string) (bool, string, vclock.Clock, error) {
	var resp checkResponse
	err := c.post(ctx, "/check-card-format", orderIDRequest{OrderID: orderID}, &resp)
	return resp.Success, resp.Message, resp.Clock, err
}

// ClearOrder calls the remote checker's ClearOrder operation.
func (c *Client) ClearOrder(ctx context.Context, orderID string, finalClock vclock.Clock) (string, bool, error) {
	var resp clearOrderResponse
	err := c.post(ctx, "/clear-order", clearOrderRequest{OrderID: orderID, FinalClock: finalClock}, &resp)
	return resp.Message, resp.Cleared, err
}
