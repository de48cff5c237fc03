// Package config collects small environment-variable parsing helpers shared
// by every cmd/*/main.go. Each binary reads its settings into local
// variables once at startup, the same "parse once at boot" shape the teacher
// repo uses for its flag.Parse() block in cmd/ratelimiter-api — adapted from
// flags to env vars because that is what this system's external interface
// names (see spec.md §6). A malformed PEERS or BACKUP_PEERS list makes the
// binary exit with log.Fatalf; IntOrDefault falls back to its default on a
// malformed number instead of failing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Peer identifies one executor replica reachable over HTTP.
type Peer struct {
	ID   int
	Host string
	Port string
}

// Addr returns host:port for this peer.
func (p Peer) Addr() string {
	return p.Host + ":" + p.Port
}

// BackupPeer identifies one inventory backup node reachable over HTTP.
type BackupPeer struct {
	Host string
	Port string
}

// Addr returns host:port for this backup peer.
func (b BackupPeer) Addr() string {
	return b.Host + ":" + b.Port
}

// StringOrDefault returns the environment variable's value, or def if unset or empty.
func StringOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// IntOrDefault parses the environment variable as an int, or returns def if
// unset, empty, or malformed.
func IntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ParsePeers parses a comma-separated "id:host:port,id:host:port" list, the
// format spec.md §6 assigns to the PEERS environment variable.
func ParsePeers(raw string) ([]Peer, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	peers := make([]Peer, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		fields := strings.Split(p, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed peer entry %q: want id:host:port", p)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed peer id in %q: %w", p, err)
		}
		peers = append(peers, Peer{ID: id, Host: fields[1], Port: fields[2]})
	}
	return peers, nil
}

// ParseBackupPeers parses a comma-separated "host:port,host:port" list, the
// format spec.md §6 assigns to the BACKUP_PEERS environment variable.
func ParseBackupPeers(raw string) ([]BackupPeer, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	peers := make([]BackupPeer, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		host, port, err := splitHostPort(p)
		if err != nil {
			return nil, fmt.Errorf("malformed backup peer entry %q: %w", p, err)
		}
		peers = append(peers, BackupPeer{Host: host, Port: port})
	}
	return peers, nil
}

func splitHostPort(s string) (host, port string, err error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("want host:port")
	}
	return s[:idx], s[idx+1:], nil
}
