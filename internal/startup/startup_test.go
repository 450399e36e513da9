package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STARTUP_TEST_VAR", "value")
	if got := getEnv("STARTUP_TEST_VAR", "default"); got != "value" {
		t.Errorf("getEnv = %q, want value", got)
	}
	if got := getEnv("STARTUP_TEST_UNSET", "default"); got != "default" {
		t.Errorf("getEnv = %q, want default", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"", true, true},
		{"", false, false},
		{"notabool", true, true},
		{"notabool", false, false},
	}
	for _, tt := range tests {
		t.Setenv("STARTUP_TEST_BOOL", tt.value)
		if got := getEnvBool("STARTUP_TEST_BOOL", tt.defaultValue); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion == "" || info.OS == "" || info.Arch == "" {
		t.Errorf("incomplete build info: %+v", info)
	}
}

func TestEnsureDirectory(t *testing.T) {
	dir := t.TempDir()

	// Existing directory passes.
	if err := ensureDirectory(dir); err != nil {
		t.Errorf("ensureDirectory(existing) = %v", err)
	}

	// Missing directory gets created.
	created := filepath.Join(dir, "sub", "dir")
	if err := ensureDirectory(created); err != nil {
		t.Errorf("ensureDirectory(missing) = %v", err)
	}
	if info, err := os.Stat(created); err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}

	// A file in the way is an error.
	file := filepath.Join(dir, "afile")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ensureDirectory(file); err == nil {
		t.Error("ensureDirectory accepted a regular file")
	}
}

func TestTestWriteAccess(t *testing.T) {
	if err := testWriteAccess(t.TempDir()); err != nil {
		t.Errorf("testWriteAccess(tempdir) = %v", err)
	}
	if err := testWriteAccess(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("testWriteAccess succeeded on missing directory")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_DIR", dir)
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_HEALTH_CHECKS", "false")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Port != "9999" {
		t.Errorf("Port = %q, want 9999", config.Port)
	}
	if config.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if config.LogHealthChecks {
		t.Error("LogHealthChecks = true, want false")
	}
	if config.DatabasePath != filepath.Join(dir, "registry.db") {
		t.Errorf("DatabasePath = %q", config.DatabasePath)
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(http.ResponseWriter, *http.Request) {}).Methods("GET")
	r.HandleFunc("/api/decode/thumbnail", func(http.ResponseWriter, *http.Request) {}).Methods("POST")

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	found := map[string]string{}
	for _, route := range routes {
		found[route.Path] = route.Method
	}
	if found["/healthz"] != "GET" || found["/api/decode/thumbnail"] != "POST" {
		t.Errorf("routes = %v", found)
	}
}
