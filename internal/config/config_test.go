package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Port:       "8080",
		DBPath:     "./test.db",
		LogLevel:   "info",
		ShareScale: 10,
		Timezone:   "UTC",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "legacy cent share scale",
			modify:  func(c *Config) { c.ShareScale = 2 },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			modify:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range high",
			modify:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			modify:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "share scale below currency precision",
			modify:      func(c *Config) { c.ShareScale = 1 },
			wantErr:     true,
			errorString: "invalid share scale 1",
		},
		{
			name:        "unknown timezone",
			modify:      func(c *Config) { c.Timezone = "Nowhere/Land" },
			wantErr:     true,
			errorString: "invalid timezone 'Nowhere/Land'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHARE_SCALE", "2")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DB_PATH", "")
	t.Setenv("TIMEZONE", "")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.ShareScale != 2 {
		t.Errorf("ShareScale = %d, want 2", cfg.ShareScale)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if cfg.DBPath != "./data/familymoney.db" {
		t.Errorf("DBPath = %s, want default", cfg.DBPath)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %s, want :9090", cfg.Addr())
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location() = %s, want UTC", cfg.Location())
	}
}
