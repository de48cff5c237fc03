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

// Command inventory runs one node of the replicated inventory store, in
// either ROLE=primary or ROLE=backup.
package main

import (
	"log"

	"checkout/internal/config"
	"checkout/internal/inventory"
	"checkout/internal/telemetry"
)

// seedStock is the stock map every node, primary or backup, starts with.
var seedStock = map[string]int64{"Book A": 1}

func main() {
	port := config.StringOrDefault("PORT", "8090")
	role := inventory.Role(config.StringOrDefault("ROLE", string(inventory.RolePrimary)))
	if metricsAddr := config.StringOrDefault("METRICS_ADDR", ""); metricsAddr != "" {
		telemetry.Enable(metricsAddr)
	}

	var backupAddrs []string
	if role == inventory.RolePrimary {
		peers, err := config.ParseBackupPeers(config.StringOrDefault("BACKUP_PEERS", ""))
		if err != nil {
			log.Fatalf("[Inventory] bad BACKUP_PEERS: %v", err)
		}
		for _, p := range peers {
			backupAddrs = append(backupAddrs, p.Addr())
		}
	}

	store := inventory.NewStore(seedStock)
	srv := inventory.NewServer(store, role, backupAddrs)
	if err := srv.ListenAndServe(":" + port); err != nil {
		log.Fatalf("[Inventory] server stopped: %v", err)
	}
}
