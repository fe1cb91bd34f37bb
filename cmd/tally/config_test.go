package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Language != "por" {
		t.Errorf("default language = %q, want por", cfg.Language)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	body := `
language: por+eng
thresholds:
  pdftext: 0.4
  ocr: 0.6
cloud:
  url: https://extractor.example.com/v1/extract
  headers:
    Authorization: Bearer token
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Language != "por+eng" {
		t.Errorf("language = %q", cfg.Language)
	}
	if cfg.Thresholds["pdftext"] != 0.4 || cfg.Thresholds["ocr"] != 0.6 {
		t.Errorf("thresholds = %v", cfg.Thresholds)
	}
	if cfg.Cloud.URL == "" || cfg.Cloud.Headers["Authorization"] == "" {
		t.Errorf("cloud config = %+v", cfg.Cloud)
	}
}

func TestLoadConfig_RejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	if err := os.WriteFile(path, []byte("thresholds:\n  ocr: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected an error for an out-of-range threshold")
	}
}

func TestParsePages(t *testing.T) {
	got, err := parsePages("1, 3,5")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("parsePages = %v", got)
	}
	if _, err := parsePages("0"); err == nil {
		t.Error("expected an error for page 0")
	}
	if _, err := parsePages("x"); err == nil {
		t.Error("expected an error for a non-number")
	}
}
