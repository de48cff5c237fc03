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

// Command orchestrator runs the client-facing checkout endpoint, fanning
// out to the fraud, transaction and suggestions services and enqueueing
// accepted orders into the priority queue.
package main

import (
	"log"

	"checkout/internal/config"
	"checkout/internal/fraud"
	"checkout/internal/orchestrator"
	"checkout/internal/queue"
	"checkout/internal/suggestions"
	"checkout/internal/telemetry"
	"checkout/internal/transaction"
)

func main() {
	port := config.StringOrDefault("PORT", "8080")
	if metricsAddr := config.StringOrDefault("METRICS_ADDR", ""); metricsAddr != "" {
		telemetry.Enable(metricsAddr)
	}

	fraudAddr := config.StringOrDefault("FRAUD_ADDR", "http://127.0.0.1:8081")
	transactionAddr := config.StringOrDefault("TRANSACTION_ADDR", "http://127.0.0.1:8082")
	suggestionsAddr := config.StringOrDefault("SUGGESTIONS_ADDR", "http://127.0.0.1:8083")
	queueAddr := config.StringOrDefault("QUEUE_ADDR", "http://127.0.0.1:8084")

	srv := orchestrator.NewServer(
		fraud.NewClient(fraudAddr),
		transaction.NewClient(transactionAddr),
		suggestions.NewClient(suggestionsAddr),
		queue.NewClient(queueAddr),
	)
	if err := srv.ListenAndServe(":" + port); err != nil {
		log.Fatalf("[Orchestrator] server stopped: %v", err)
	}
}
