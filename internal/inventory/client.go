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

package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin RPC client for a remote inventory node (primary or
// backup), used by the executor to read and decrement stock.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the node at baseURL (e.g. "http://127.0.0.1:8090").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Read calls the remote node's /read endpoint.
func (c *Client) Read(ctx context.Context, title string) (int64, error) {
	u := c.baseURL + "/read?" + url.Values{"title": {title}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("inventory read request for %q: %w", title, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inventory read %q: %w", title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inventory read %q: status %d", title, resp.StatusCode)
	}
	var out readResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("inventory read %q: decode response: %w", title, err)
	}
	return out.Stock, nil
}

// DecrementStock calls the remote node's /decrement endpoint.
func (c *Client) DecrementStock(ctx context.Context, title string, quantity int64) (success bool, remaining int64, err error) {
	body, err := json.Marshal(decrementRequest{Title: title, Quantity: quantity})
	if err != nil {
		return false, 0, fmt.Errorf("inventory decrement %q: encode request: %w", title, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/decrement", bytes.NewReader(body))
	if err != nil {
		return false, 0, fmt.Errorf("inventory decrement request for %q: %w", title, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false, 0, fmt.Errorf("inventory decrement %q: %w", title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, 0, fmt.Errorf("inventory decrement %q: status %d", title, resp.StatusCode)
	}
	var out decrementResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, 0, fmt.Errorf("inventory decrement %q: decode response: %w", title, err)
	}
	return out.Success, out.Remaining, nil
}

// Write calls the remote primary's /write endpoint.
func (c *Client) Write(ctx context.Context, title string, newStock int64) error {
	body, err := json.Marshal(writeRequest{Title: title, NewStock: newStock})
	if err != nil {
		return fmt.Errorf("inventory write %q: encode request: %w", title, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/write", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("inventory write request for %q: %w", title, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("inventory write %q: %w", title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("inventory write %q: status %d", title, resp.StatusCode)
	}
	return nil
}

// ReplicateTo sends an unconditional overwrite to a backup node at peerAddr
// ("host:port", no scheme). It is a package-level helper (rather than a
// Client method) because the primary calls it with a short, fixed timeout
// distinct from a caller-supplied context.
func ReplicateTo(peerAddr string, title string, newStock int64, timeout time.Duration) error {
	body, err := json.Marshal(writeRequest{Title: title, NewStock: newStock})
	if err != nil {
		return fmt.Errorf("inventory replicate %q to %s: encode request: %w", title, peerAddr, err)
	}
	client := &http.Client{Timeout: timeout}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+peerAddr+"/replicate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("inventory replicate request for %q to %s: %w", title, peerAddr, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("inventory replicate %q to %s: %w", title, peerAddr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("inventory replicate %q to %s: status %d", title, peerAddr, resp.StatusCode)
	}
	return nil
}
