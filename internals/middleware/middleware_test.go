package middle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"statusboard/config"
	"statusboard/internals/security"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var testParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func okHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
}

// ----- WebhookAuth -----

func TestWebhookAuth(t *testing.T) {
	hash, err := security.HashAPIKey("hook-key", testParams)
	if err != nil {
		t.Fatal(err)
	}
	logger := zerolog.Nop()
	auth := NewWebhookAuth(security.NewKeyVerifier([]string{hash}), &logger)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer hook-key", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic hook-key", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"extra parts", "Bearer hook-key x", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int
			req := httptest.NewRequest(http.MethodPost, "/webhook/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			auth.Handle(okHandler(&hits)).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK && hits != 0 {
				t.Error("next handler ran after rejected auth")
			}
		})
	}
}

// ----- AuthMiddleware / AllowAdmin -----

func TestAdminChain(t *testing.T) {
	ts := security.NewTokenService(&config.AuthConfig{Secret: "0123456789abcdef", ExpiryMin: 5})
	admin, _ := ts.GenerateAdminToken("ops")
	viewer := mustSubject(t, ts, "viewer")

	chain := func(h http.Handler) http.Handler {
		return NewAuthMiddleware(ts).Handle(AllowAdmin(h))
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"admin", "Bearer " + admin, http.StatusOK},
		{"viewer", "Bearer " + viewer, http.StatusForbidden},
		{"no header", "", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int
			req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			chain(okHandler(&hits)).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.code, rec.Body)
			}
		})
	}

	rec := httptest.NewRecorder()
	var hits int
	AllowAdmin(okHandler(&hits)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized || hits != 0 {
		t.Errorf("AllowAdmin without claims: status %d, hits %d", rec.Code, hits)
	}
}

func mustSubject(t *testing.T, ts *security.TokenService, role string) string {
	t.Helper()
	c := security.RequestClaims{Role: role}
	c.Subject = "someone"
	token, err := ts.GenerateAccessToken(c)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// ----- RateLimiter -----

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 2)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	var hits int
	h := rl.Handle(okHandler(&hits))
	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, code)
		}
	}
	if code := call("10.0.0.1:5555"); code != http.StatusTooManyRequests {
		t.Errorf("over burst = %d, want 429", code)
	}
	if code := call("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other ip = %d, want 200", code)
	}

	now = now.Add(time.Second)
	if code := call("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("after refill = %d, want 200", code)
	}

	now = now.Add(time.Hour)
	rl.Allow("10.0.0.3")
	rl.mu.Lock()
	n := len(rl.entries)
	rl.mu.Unlock()
	if n != 1 {
		t.Errorf("idle limiters not evicted, %d entries", n)
	}
}

// ----- Metrics -----

type observation struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeRecorder) Observe(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method, route, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	recorder := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/badge/{tag}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/badge/api", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(recorder.obs) != 2 {
		t.Fatalf("observations = %+v", recorder.obs)
	}
	if got := recorder.obs[0]; got != (observation{"GET", "/badge/{tag}", http.StatusTeapot}) {
		t.Errorf("first = %+v", got)
	}
	if got := recorder.obs[1]; got.status != http.StatusNotFound {
		t.Errorf("second = %+v", got)
	}
}

// ----- Logger -----

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusUnauthorized, "warn"},
		{http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			r := chi.NewRouter()
			r.Use(Logger(&log))
			r.Get("/badge/{tag}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/badge/api", nil))

			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("log line %q: %v", buf.String(), err)
			}
			if line["level"] != tt.level {
				t.Errorf("level = %v, want %s", line["level"], tt.level)
			}
			if line["route"] != "/badge/{tag}" || line["path"] != "/badge/api" {
				t.Errorf("route/path = %v/%v", line["route"], line["path"])
			}
			if line["status"] != float64(tt.status) {
				t.Errorf("status = %v", line["status"])
			}
		})
	}
}
