package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.Extraction.ChunkTokens != 2500 || cfg.Extraction.OverlapTokens != 250 {
		t.Errorf("chunking defaults = %d/%d, want 2500/250", cfg.Extraction.ChunkTokens, cfg.Extraction.OverlapTokens)
	}
	if cfg.Extraction.Concurrency != 4 {
		t.Errorf("Extraction.Concurrency = %d, want 4", cfg.Extraction.Concurrency)
	}
	if cfg.Extraction.TimeoutSeconds != 60 {
		t.Errorf("Extraction.TimeoutSeconds = %d, want 60", cfg.Extraction.TimeoutSeconds)
	}
	if cfg.Database.MaxIdleConns != 2 || cfg.Database.MaxOpenConns != 10 {
		t.Errorf("pool defaults = %d/%d, want 2/10", cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_DATABASE_DSN", "postgres://ledger:secret@db:5432/ledger")
	t.Setenv("LEDGER_EXTRACTION_CONCURRENCY", "8")
	t.Setenv("LEDGER_GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.DSN != "postgres://ledger:secret@db:5432/ledger" {
		t.Errorf("Database.DSN = %q, env override ignored", cfg.Database.DSN)
	}
	if cfg.Extraction.Concurrency != 8 {
		t.Errorf("Extraction.Concurrency = %d, want 8", cfg.Extraction.Concurrency)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-pro", cfg.Gemini.Model)
	}
}
