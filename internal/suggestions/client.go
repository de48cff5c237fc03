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

package suggestions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout/pkg/vclock"
)

// Client is the orchestrator-side RPC client for the suggestions service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the suggestions service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// GetSuggestions calls the remote service's GetSuggestions operation,
// passing orderID as RPC metadata via OrderIDHeader.
func (c *Client) GetSuggestions(ctx context.Context, orderID string, purchasedBooks []string) ([]string, vclock.Clock, error) {
	body, err := json.Marshal(suggestionsRequest{PurchasedBooks: purchasedBooks})
	if err != nil {
		return nil, nil, fmt.Errorf("suggestions GetSuggestions: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/suggestions", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("suggestions GetSuggestions: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if orderID != "" {
		req.Header.Set(OrderIDHeader, orderID)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("suggestions GetSuggestions: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("suggestions GetSuggestions: status %d", resp.StatusCode)
	}
	var out suggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, fmt.Errorf("suggestions GetSuggestions: decode response: %w", err)
	}
	return out.Titles, out.Clock, nil
}
