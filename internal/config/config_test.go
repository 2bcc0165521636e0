package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:            "8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		DBPath:          "./test.db",
		RatesBaseURL:    "https://open.er-api.com",
		RatesTimeout:    10 * time.Second,
		AllowedOrigin:   "*",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: "invalid port 'abc'",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "invalid port 70000",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.DBPath = "" },
			wantErr: "database path cannot be empty",
		},
		{
			name:    "bad rates URL scheme",
			mutate:  func(c *Config) { c.RatesBaseURL = "ftp://rates.example.com" },
			wantErr: "invalid rates URL scheme",
		},
		{
			name:    "read timeout too small",
			mutate:  func(c *Config) { c.ReadTimeout = 100 * time.Millisecond },
			wantErr: "invalid read timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "RATES_URL", "RATES_TIMEOUT"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DBPath != "./data/trips.db" {
		t.Errorf("DBPath = %s, want ./data/trips.db", cfg.DBPath)
	}
	if cfg.RatesTimeout != 10*time.Second {
		t.Errorf("RatesTimeout = %v, want 10s", cfg.RatesTimeout)
	}
}
