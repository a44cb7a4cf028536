package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LOG_LEVEL", "LOG_OUTPUT", "LOG_FORMAT", "METRICS_ENABLED", "EVENTS_ENABLED", "EVENTS_BUFFER", "SEED_DEMO"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" || cfg.Log.Output != "stdout" {
		t.Fatalf("unexpected log options %+v", cfg.Log)
	}
	if !cfg.Metrics.Enabled || !cfg.Events.Enabled || cfg.Events.Buffer != 16 {
		t.Fatalf("unexpected toggles %+v %+v", cfg.Metrics, cfg.Events)
	}
	if cfg.SeedDemo {
		t.Fatal("seed should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("EVENTS_BUFFER", "4")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Log.Format != "json" || cfg.Metrics.Enabled || cfg.Events.Buffer != 4 || !cfg.SeedDemo {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":            "80 80",
		"METRICS_ENABLED": "maybe",
		"EVENTS_BUFFER":   "0",
		"SEED_DEMO":       "yes please",
	}
	for key, value := range cases {
		clearEnv(t)
		t.Setenv(key, value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %s=%q", key, value)
		}
	}
}
