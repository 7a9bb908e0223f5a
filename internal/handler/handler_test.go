package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	sealer, err := crypto.NewSealerWithParams("history-secret", crypto.KeyParams{
		Memory: 1024, Iterations: 1, Parallelism: 1, Salt: []byte("test-salt"),
	})
	if err != nil {
		t.Fatalf("NewSealerWithParams() unexpected error: %v", err)
	}

	return NewRouter(RouterConfig{
		Generator:     service.NewGeneratorService(),
		History:       service.NewHistoryService(repository.NewMemoryHistoryRepository(), sealer),
		Sessions:      service.NewSessionService(testSecret, time.Hour),
		SessionSecret: testSecret,
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleGenerate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, resp model.GenerateResponse)
	}{
		{
			name:       "random",
			body:       `{"mode":"random","length":24,"uppercase":true,"lowercase":true,"numbers":true,"symbols":true}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp model.GenerateResponse) {
				if len(resp.Password) != 24 || resp.Length != 24 {
					t.Errorf("unexpected password %q", resp.Password)
				}
			},
		},
		{
			name:       "passphrase",
			body:       `{"mode":"passphrase","word_count":3,"separator":"-"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp model.GenerateResponse) {
				if strings.Count(resp.Password, "-") != 2 {
					t.Errorf("unexpected passphrase %q", resp.Password)
				}
			},
		},
		{
			name:       "pin",
			body:       `{"mode":"pin","length":8}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp model.GenerateResponse) {
				if len(resp.Password) != 8 || resp.Strength.Level == "" {
					t.Errorf("unexpected pin response %+v", resp)
				}
			},
		},
		{
			name:       "random without classes",
			body:       `{"mode":"random","length":16}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "passphrase without separator",
			body:       `{"mode":"passphrase","word_count":3}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "pin without length",
			body:       `{"mode":"pin"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown mode",
			body:       `{"mode":"emoji"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "length too long",
			body:       `{"mode":"random","length":100000,"numbers":true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{"mode":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body fails gating",
			body:       "",
			wantStatus: http.StatusBadRequest,
		},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/generate", tt.body, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Header().Get("Cache-Control") != "no-store" {
				t.Error("expected Cache-Control: no-store")
			}
			if tt.check == nil {
				return
			}
			var resp model.GenerateResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			tt.check(t, resp)
		})
	}
}

func TestHandleGenerate_BodyTooLarge(t *testing.T) {
	body := `{"mode":"random","separator":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/generate", body, "")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandleStrength(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/strength", `{"password":"Aa1!Aa1!Aa1!Aa1!"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp model.StrengthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Score != 75 || resp.Level != "Strong" || resp.Color != "#3f3f46" {
		t.Errorf("unexpected strength %+v", resp)
	}
}

func TestHistoryFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/session", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("session status = %d, want 201", rec.Code)
	}
	var session model.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}

	if rec := do(t, router, http.MethodGet, "/api/v1/history", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}

	for _, pw := range []string{"first-pass", "second-pass", "first-pass"} {
		body, _ := json.Marshal(model.HistoryRecordRequest{Password: pw, Mode: model.ModePassphrase})
		rec := do(t, router, http.MethodPost, "/api/v1/history", string(body), session.Token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("record status = %d, want 201 (%s)", rec.Code, rec.Body.String())
		}
	}

	rec = do(t, router, http.MethodGet, "/api/v1/history", "", session.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var history model.HistoryResponse
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history.Entries) != 2 || history.Entries[0].Password != "first-pass" {
		t.Errorf("unexpected history %+v", history.Entries)
	}

	for name, body := range map[string]string{
		"empty password":    `{"password":""}`,
		"oversize password": `{"password":"` + strings.Repeat("x", service.MaxHistoryPasswordBytes+1) + `"}`,
		"unknown mode":      `{"password":"ok","mode":"a-mode-name-longer-than-the-column"}`,
	} {
		if rec := do(t, router, http.MethodPost, "/api/v1/history", body, session.Token); rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", name, rec.Code)
		}
	}

	if rec := do(t, router, http.MethodDelete, "/api/v1/history", "", session.Token); rec.Code != http.StatusNoContent {
		t.Errorf("clear status = %d, want 204", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/history", "", session.Token)
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history.Entries) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(history.Entries))
	}
}

func TestHistoryIsScopedPerSession(t *testing.T) {
	router := newTestRouter(t)

	tokenA, _, _ := crypto.IssueSessionToken("session-a", testSecret, time.Hour)
	tokenB, _, _ := crypto.IssueSessionToken("session-b", testSecret, time.Hour)

	do(t, router, http.MethodPost, "/api/v1/history", `{"password":"only-a"}`, tokenA)

	rec := do(t, router, http.MethodGet, "/api/v1/history", "", tokenB)
	var history model.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history.Entries) != 0 {
		t.Errorf("session b saw %d entries from session a", len(history.Entries))
	}
}

func TestHistoryRoutesAreRateLimited(t *testing.T) {
	sealer, err := crypto.NewSealerWithParams("history-secret", crypto.KeyParams{
		Memory: 1024, Iterations: 1, Parallelism: 1, Salt: []byte("test-salt"),
	})
	if err != nil {
		t.Fatalf("NewSealerWithParams() unexpected error: %v", err)
	}
	router := NewRouter(RouterConfig{
		Generator:      service.NewGeneratorService(),
		History:        service.NewHistoryService(repository.NewMemoryHistoryRepository(), sealer),
		Sessions:       service.NewSessionService(testSecret, time.Hour),
		SessionSecret:  testSecret,
		RateLimitRPS:   0.001,
		RateLimitBurst: 2,
	})
	token, _, _ := crypto.IssueSessionToken("session-a", testSecret, time.Hour)

	for i := 0; i < 2; i++ {
		if rec := do(t, router, http.MethodGet, "/api/v1/history", "", token); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := do(t, router, http.MethodPost, "/api/v1/history", `{"password":"abc"}`, token)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// the budget is shared with the generator routes
	if rec := do(t, router, http.MethodPost, "/api/v1/strength", `{"password":"abc"}`, ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("strength status = %d, want 429", rec.Code)
	}
}
