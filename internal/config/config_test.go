package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("port = %d, want default 3000", cfg.Port)
	}
	if cfg.RingTimeout != 30*time.Second {
		t.Fatalf("ring_timeout = %v, want 30s", cfg.RingTimeout)
	}
	if cfg.Mode != "release" {
		t.Fatalf("mode = %q, want release", cfg.Mode)
	}
	servers := cfg.ICEServers()
	if len(servers) != 1 || len(servers[0].URLs) != 1 {
		t.Fatalf("default ICE servers = %+v", servers)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "test")

	yaml := []byte(`
mode: debug
port: 8081
ring_timeout: 5s
ice_servers:
  - urls:
      - turn:turn.example.com:3478
    username: user
    credential: pass
`)
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8081 || cfg.Mode != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RingTimeout != 5*time.Second {
		t.Fatalf("ring_timeout = %v, want 5s", cfg.RingTimeout)
	}

	servers := cfg.ICEServers()
	if len(servers) != 1 {
		t.Fatalf("ICE servers = %+v", servers)
	}
	if servers[0].Username != "user" || servers[0].Credential != "pass" {
		t.Fatalf("TURN credentials not mapped: %+v", servers[0])
	}
}
