package llmbattle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "data" || cfg.ReportsDir != "reports" {
		t.Errorf("dirs = %q, %q; want data, reports", cfg.DataDir, cfg.ReportsDir)
	}
	if cfg.Provider != "yahoo" {
		t.Errorf("provider = %q, want yahoo", cfg.Provider)
	}
	if cfg.MaxPicks != MaxPicks {
		t.Errorf("max picks = %d, want %d", cfg.MaxPicks, MaxPicks)
	}
	if len(cfg.Models) != 4 {
		t.Errorf("models = %d, want the 4 default entrants", len(cfg.Models))
	}
	if cfg.Schedule.Predict == "" || cfg.Schedule.Fetch == "" || cfg.Schedule.Aggregate == "" {
		t.Error("schedule defaults are empty")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ltb.yaml")
	content := `
data_dir: /var/ltb
price_provider: eodhd
max_picks: 3
universe: ["7203.T", "6758.T"]
models:
  - name: gemini
    provider: gemini
    model: gemini-2.0-flash
    api_key_env: GEMINI_API_KEY
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/var/ltb" || cfg.Provider != "eodhd" || cfg.MaxPicks != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Universe) != 2 || cfg.Universe[0] != "7203.T" {
		t.Errorf("universe = %v", cfg.Universe)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].Provider != "gemini" {
		t.Errorf("models = %+v", cfg.Models)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LTB_DATA_DIR", "/tmp/override")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/override" {
		t.Errorf("data dir = %q, want the env override", cfg.DataDir)
	}
}
