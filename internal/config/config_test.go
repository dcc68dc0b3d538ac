package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/peopleevents/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
port: 9090
logLevel: debug
dbDriver: postgres
databaseURL: postgres://localhost/people
jwtSecret: s3cret
sessionTTL: 24h
storeTimeout: 3s
users:
  - username: alice
    passwordHash: $2a$10$abcdefghijklmnopqrstuuN0aQ7E2bKqvYl7c7iM1P0C0Jm0x3v2S
    role: admin
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected port/logLevel: %d %s", cfg.Port, cfg.LogLevel)
	}
	if cfg.DBDriver != DriverPostgres || cfg.DatabaseURL != "postgres://localhost/people" {
		t.Errorf("unexpected db settings: %+v", cfg)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.StoreTimeout != 3*time.Second {
		t.Errorf("unexpected durations: %v %v", cfg.SessionTTL, cfg.StoreTimeout)
	}

	creds, err := cfg.Credentials()
	if err != nil {
		t.Fatalf("Credentials failed: %v", err)
	}
	if len(creds) != 1 || creds[0].Username != "alice" || creds[0].Role != models.RoleAdmin {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "jwtSecret: from-file\n")
	t.Setenv("PE_PORT", "7070")
	t.Setenv("PE_JWT_SECRET", "from-env")
	t.Setenv("PE_DB_PATH", "/tmp/override.db")
	t.Setenv("PE_STORE_TIMEOUT", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Port)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("jwtSecret = %q, want from-env", cfg.JWTSecret)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("dbPath = %q", cfg.DBPath)
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("storeTimeout = %v", cfg.StoreTimeout)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("dbDriver default = %q, want sqlite", cfg.DBDriver)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing secret", body: "port: 8080\n", wantErr: "jwtSecret"},
		{name: "unknown driver", body: "jwtSecret: x\ndbDriver: mongo\n", wantErr: "unknown dbDriver"},
		{name: "postgres without url", body: "jwtSecret: x\ndbDriver: postgres\n", wantErr: "databaseURL"},
		{name: "bad port env", body: "jwtSecret: x\n", env: map[string]string{"PE_PORT": "http"}, wantErr: "PE_PORT"},
		{name: "bad yaml", body: "port: [\n", wantErr: "parse config"},
		{name: "unknown log level", body: "jwtSecret: x\nlogLevel: loud\n", wantErr: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestCredentialsDefault(t *testing.T) {
	creds, err := Defaults().Credentials()
	if err != nil {
		t.Fatalf("Credentials failed: %v", err)
	}
	roles := map[string]models.Role{}
	for _, c := range creds {
		roles[c.Username] = c.Role
	}
	if roles["admin"] != models.RoleAdmin || roles["member"] != models.RoleMember || len(roles) != 2 {
		t.Errorf("unexpected default credentials: %v", roles)
	}
}

func TestCredentialsRejectsUnknownRole(t *testing.T) {
	cfg := Defaults()
	cfg.Users = []UserEntry{{Username: "x", PasswordHash: "h", Role: "owner"}}
	if _, err := cfg.Credentials(); err == nil {
		t.Error("expected error for unknown role")
	}
}
