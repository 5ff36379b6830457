// Where: internal/config/settings_test.go
// What: Tests for settings load, env overlay, and validation.
// Why: The CLI and Lambda must agree on parameter prefixes and backends.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AWS_REGION",
		"AWS_ENDPOINT_URL",
		"EMR_LAUNCH_CONFIG_PATH",
		"EMR_LAUNCH_CONFIG_HOME",
		"EMR_LAUNCH_STORE_BACKEND",
		"EMR_LAUNCH_STORE_TABLE",
		"EMR_LAUNCH_STORE_BUCKET",
		"EMR_LAUNCH_STORE_SEED",
		"EMR_LAUNCH_PROFILES_PREFIX",
		"EMR_LAUNCH_CONFIGURATIONS_PREFIX",
		"EMR_LAUNCH_TASK_TOKENS_PREFIX",
		"EMR_LAUNCH_LOG_URI_TEMPLATE",
		"EMR_LAUNCH_LOG_LEVEL",
		"EMR_LAUNCH_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultSettings()
	cfg.Region = "eu-west-1"
	cfg.Store.Backend = BackendDynamoDB
	cfg.Store.Table = "params"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("settings mismatch: expected %#v, got %#v", cfg, loaded)
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	loaded, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !reflect.DeepEqual(loaded, DefaultSettings()) {
		t.Fatalf("expected defaults, got %#v", loaded)
	}
}

func TestLoadFileRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfigPathHonorsOverride(t *testing.T) {
	clearEnv(t)
	override := filepath.Join(t.TempDir(), "custom", "config.yaml")
	t.Setenv("EMR_LAUNCH_CONFIG_PATH", override)

	got, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if got != override {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestConfigPathUsesHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if want := filepath.Join(home, ".emr-launch", "config.yaml"); got != want {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestLoadOverlaysEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "region: us-east-1\nstore:\n  backend: ssm\nparameters:\n  profiles_prefix: /custom/profiles/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AWS_REGION", "ap-northeast-1")
	t.Setenv("EMR_LAUNCH_STORE_BACKEND", "S3")
	t.Setenv("EMR_LAUNCH_STORE_BUCKET", "param-bucket")
	t.Setenv("EMR_LAUNCH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Region != "ap-northeast-1" {
		t.Fatalf("unexpected region: %s", cfg.Region)
	}
	if cfg.Store.Backend != BackendS3 || cfg.Store.Bucket != "param-bucket" {
		t.Fatalf("unexpected store: %#v", cfg.Store)
	}
	if cfg.Parameters.ProfilesPrefix != "/custom/profiles" {
		t.Fatalf("unexpected profiles prefix: %s", cfg.Parameters.ProfilesPrefix)
	}
	if cfg.Parameters.ConfigurationsPrefix != "/emr_launch/cluster_configurations" {
		t.Fatalf("unexpected configurations prefix: %s", cfg.Parameters.ConfigurationsPrefix)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Store.Backend != BackendSSM {
		t.Fatalf("unexpected backend: %s", cfg.Store.Backend)
	}
	if cfg.Parameters.TaskTokensPrefix != "/emr_launch/control_plane/task_tokens/emr_utilities" {
		t.Fatalf("unexpected task token prefix: %s", cfg.Parameters.TaskTokensPrefix)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "empty backend falls back to ssm", mutate: func(s *Settings) { s.Store.Backend = "" }},
		{name: "memory", mutate: func(s *Settings) { s.Store.Backend = "memory" }},
		{name: "unknown backend", mutate: func(s *Settings) { s.Store.Backend = "etcd" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(s *Settings) { s.Store.Backend = "s3" }, wantErr: true},
		{name: "dynamodb without table", mutate: func(s *Settings) {
			s.Store.Backend = "dynamodb"
			s.Store.Table = " "
		}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSettings()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	if got := normalizePrefix("emr/profiles/", "/fallback"); got != "/emr/profiles" {
		t.Fatalf("unexpected prefix: %s", got)
	}
	if got := normalizePrefix("  ", "/fallback"); got != "/fallback" {
		t.Fatalf("unexpected prefix: %s", got)
	}
}
