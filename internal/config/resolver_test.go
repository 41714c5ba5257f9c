package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfig_Precedence_ConfigEnvCLI(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	yaml := `db_path: ~/.prepdeck/from-config.db
model: openrouter/openai/gpt-4o-mini
technique: few_shot
question_count: 8
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PREPDECK_DB", "~/from-env.db")
	t.Setenv("PREPDECK_MODEL", "google/gemini-2.5-flash")

	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: cfgPath,
		CLIModel:   "openrouter/deepseek/deepseek-v3",
		CLIDBPath:  "~/from-cli.db",
	})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}

	if resolved.DBPath.Source != SourceCLI {
		t.Fatalf("expected DB path source cli, got %s", resolved.DBPath.Source)
	}
	if resolved.Model.Source != SourceCLI {
		t.Fatalf("expected model source cli, got %s", resolved.Model.Source)
	}
	if resolved.Technique.Source != SourceConfig || resolved.Technique.Value != "few_shot" {
		t.Fatalf("expected technique from config, got %+v", resolved.Technique)
	}
	if resolved.QuestionCount.Value != "8" {
		t.Fatalf("expected question count from config, got %+v", resolved.QuestionCount)
	}
}

func TestResolveConfig_MissingFileIsNotAnError(t *testing.T) {
	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err != nil {
		t.Fatalf("missing config file should resolve cleanly: %v", err)
	}
	if resolved.Model.Value != "" {
		t.Fatalf("unexpected model: %+v", resolved.Model)
	}
}

func TestResolveConfig_DBPathExpanded(t *testing.T) {
	resolved, err := ResolveConfig(ResolveOptions{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
		CLIDBPath:  "~/sessions.db",
	})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if resolved.DBPath.Value == "~/sessions.db" {
		t.Fatal("home directory not expanded")
	}
	if filepath.Base(resolved.DBPath.Value) != "sessions.db" {
		t.Fatalf("unexpected path: %q", resolved.DBPath.Value)
	}
}

func TestEffectiveQuestionCount(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 5},
		{"12", 12},
		{"0", 5},
		{"-3", 5},
		{"many", 5},
	}
	for _, tt := range tests {
		r := ResolvedConfig{QuestionCount: ResolvedValue{Value: tt.value}}
		if got := r.EffectiveQuestionCount(5); got != tt.want {
			t.Errorf("EffectiveQuestionCount(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestAPIKeyForProvider_EnvOverridesConfig(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	yaml := `model: openrouter/openai/gpt-4o-mini
llm:
  api_key: config-key
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	resolved, err := ResolveConfig(ResolveOptions{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	k := resolved.APIKeyForProvider("openrouter/some-model")
	if k.Value != "env-key" {
		t.Fatalf("expected env key, got %q", k.Value)
	}
	if k.Source != SourceEnv {
		t.Fatalf("expected source env, got %s", k.Source)
	}
}

func TestAPIKeyForProvider_ConfigKeyScopedToModelProvider(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	yaml := `model: google/gemini-2.5-flash
llm:
  api_key: config-key
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	resolved, err := ResolveConfig(ResolveOptions{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if k := resolved.APIKeyForProvider("google"); k.Value != "config-key" {
		t.Fatalf("expected config key for google, got %q", k.Value)
	}
	if k := resolved.APIKeyForProvider("openrouter"); k.Value != "" {
		t.Fatalf("openrouter should have no key, got %q", k.Value)
	}
}
