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

// Command executor runs one bully-elected executor replica: it waits for
// its peers, runs the election, and if it wins, drains the priority queue
// against the inventory primary every 5 seconds.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"checkout/internal/config"
	"checkout/internal/executor"
	"checkout/internal/inventory"
	"checkout/internal/queue"
	"checkout/internal/telemetry"
)

func main() {
	replicaID := config.IntOrDefault("REPLICA_ID", 1)
	port := config.StringOrDefault("REPLICA_PORT", "8100")
	if metricsAddr := config.StringOrDefault("METRICS_ADDR", ""); metricsAddr != "" {
		telemetry.Enable(metricsAddr)
	}

	peers, err := config.ParsePeers(config.StringOrDefault("PEERS", ""))
	if err != nil {
		log.Fatalf("[Executor %d] bad PEERS: %v", replicaID, err)
	}

	queueAddr := config.StringOrDefault("QUEUE_ADDR", "http://127.0.0.1:8084")
	inventoryAddr := config.StringOrDefault("INVENTORY_ADDR", "http://127.0.0.1:8090")

	replica := executor.New(
		replicaID,
		peers,
		executor.NewHTTPElectionClient(),
		queue.NewClient(queueAddr),
		inventory.NewClient(inventoryAddr),
	)

	srv := executor.NewServer(replica)
	go func() {
		if err := srv.ListenAndServe(":" + port); err != nil {
			log.Fatalf("[Executor %d] server stopped: %v", replicaID, err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	replica.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	replica.Stop()
}
