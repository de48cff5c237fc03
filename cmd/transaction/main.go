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

// Command transaction runs the stateful transaction checker as a standalone
// HTTP service.
package main

import (
	"log"

	"checkout/internal/config"
	"checkout/internal/telemetry"
	"checkout/internal/transaction"
)

func main() {
	port := config.StringOrDefault("PORT", "8082")
	if metricsAddr := config.StringOrDefault("METRICS_ADDR", ""); metricsAddr != "" {
		telemetry.Enable(metricsAddr)
	}

	svc := transaction.NewService()
	srv := transaction.NewServer(svc)
	if err := srv.ListenAndServe(":" + port); err != nil {
		log.Fatalf("[Transaction] server stopped: %v", err)
	}
}
