package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"statusboard/config"
	"statusboard/internals/security"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func newTestContainer(t *testing.T, opts ...func(*config.Config)) *Container {
	t.Helper()
	hash, err := security.HashAPIKey("hook-key", &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	cfg := &config.Config{
		Port:           8080,
		Env:            "test",
		Timezone:       "UTC",
		RequestTimeout: 5 * time.Second,
		CORSOrigins:    []string{"*"},
		Store:          &config.StoreConfig{Driver: "file"},
		Auth:           &config.AuthConfig{Secret: "0123456789abcdef0123", ExpiryMin: 5},
		Webhook:        &config.WebhookConfig{APIKeyHashes: []string{hash}, RatePerSec: 100, Burst: 100},
		GitHub:         &config.GitHubConfig{Owner: "acme", Repo: "status", Timeout: time.Second},
		Monitors: []config.MonitorConfig{
			{Tag: "api", Name: "API", Path0Day: filepath.Join(dir, "api", "day.json")},
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.Nop()
	c, err := NewContainer(context.Background(), cfg, filepath.Join(dir, "config.yaml"), &logger)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = c.Shutdown(context.Background()) })
	return c
}

func TestRegisterRoutes(t *testing.T) {
	c := newTestContainer(t)
	h := RegisterRoutes(c)

	tests := []struct {
		name     string
		method   string
		target   string
		key      string
		body     string
		wantCode int
		wantBody string
	}{
		{"healthz", http.MethodGet, "/healthz", "", "", http.StatusOK, `"monitors":1`},
		{"status badge", http.MethodGet, "/badge/api", "", "", http.StatusOK, "<svg"},
		{"uptime badge", http.MethodGet, "/badge/api/uptime", "", "", http.StatusOK, "<svg"},
		{"webhook without key", http.MethodPost, "/webhook/status", "", `{"tag":"api","status":"UP"}`, http.StatusUnauthorized, "invalid or missing api key"},
		{"webhook with key", http.MethodPost, "/webhook/status", "hook-key", `{"tag":"api","status":"UP"}`, http.StatusOK, "success at"},
		{"day rollup", http.MethodPost, "/day-rollup", "", `{"monitor":"api"}`, http.StatusOK, "cssClass"},
		{"incident create without key", http.MethodPost, "/incident", "", `{}`, http.StatusUnauthorized, ""},
		{"admin reload without token", http.MethodPost, "/admin/reload", "", "", http.StatusUnauthorized, ""},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK, "statusboard_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.key != "" {
				req.Header.Set("Authorization", "Bearer "+tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantCode, rec.Body)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body, tt.wantBody)
			}
		})
	}
}

func TestRegisterRoutes_AdminRequiresAdminRole(t *testing.T) {
	c := newTestContainer(t)
	h := RegisterRoutes(c)

	token, err := security.NewTokenService(c.Config.Auth).GenerateAccessToken(security.RequestClaims{
		Role:             "viewer",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ops"},
	})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRegisterRoutes_IncidentCreateIsRateLimited(t *testing.T) {
	c := newTestContainer(t, func(cfg *config.Config) {
		cfg.Webhook.RatePerSec = 0.001
		cfg.Webhook.Burst = 3
	})
	h := RegisterRoutes(c)

	codes := map[int]int{}
	for n := 0; n < 6; n++ {
		req := httptest.NewRequest(http.MethodPost, "/incident", strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer wrong-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	if codes[http.StatusUnauthorized] != 3 || codes[http.StatusTooManyRequests] != 3 {
		t.Fatalf("codes = %v, want 3x401 then 3x429", codes)
	}
}
