package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestDefaultConfigTable(t *testing.T) {
	table, err := DefaultConfig().Table()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A-F", "G-M", "N-T", "U-Z"}
	if !reflect.DeepEqual(table.Labels(), want) {
		t.Errorf("Labels() = %v, want %v", table.Labels(), want)
	}
}

func TestLoadConfigCustomClasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[classes]]
label = "VOWELS"
letters = "AEIOU"

[[classes]]
label = "Q"
letters = "Q"

[lexicon]
path = "/srv/words.txt"
min_length = 2

[server]
max_limit = 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	table, err := cfg.Table()
	if err != nil {
		t.Fatal(err)
	}
	// order in the file is the order of the table
	if !reflect.DeepEqual(table.Labels(), []string{"VOWELS", "Q"}) {
		t.Errorf("Labels() = %v", table.Labels())
	}
	if cfg.Lexicon.Path != "/srv/words.txt" || cfg.Lexicon.MinLength != 2 {
		t.Errorf("Lexicon = %+v", cfg.Lexicon)
	}
	if cfg.Server.MaxLimit != 8 {
		t.Errorf("MaxLimit = %d", cfg.Server.MaxLimit)
	}
	// untouched sections keep their defaults
	if cfg.Server.MaxPattern != 24 || cfg.CLI.DefaultLimit != 24 {
		t.Errorf("defaults lost: %+v %+v", cfg.Server, cfg.CLI)
	}
}

func TestLoadConfigNoClassesKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nmax_limit = 16\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Classes) != 4 {
		t.Errorf("expected default classes, got %v", cfg.Classes)
	}
	if cfg.Server.MaxLimit != 16 {
		t.Errorf("MaxLimit = %d", cfg.Server.MaxLimit)
	}
}

func TestLoadConfigOverlapRejectedByTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classes = []ClassDef{
		{Label: "X", Letters: "ABC"},
		{Label: "Y", Letters: "CDE"},
	}
	if _, err := cfg.Table(); err == nil {
		t.Fatal("overlapping classes must not build a table")
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, reloaded) {
		t.Errorf("saved defaults differ from loaded: %+v vs %+v", cfg, reloaded)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// the cli section has a type error; the server section is still salvaged
	content := "[server]\nmax_limit = 8\n\n[cli]\ndefault_limit = \"oops\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.MaxLimit != 8 {
		t.Errorf("MaxLimit = %d, want salvaged 8", cfg.Server.MaxLimit)
	}
	if cfg.CLI.DefaultLimit != 24 || len(cfg.Classes) != 4 {
		t.Errorf("fallback defaults lost: %+v", cfg)
	}
}
