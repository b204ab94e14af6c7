package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/point-ledger/internal/api/httpx"
	"github.com/baharkarakas/point-ledger/internal/auth"
	"github.com/baharkarakas/point-ledger/internal/config"
	"github.com/baharkarakas/point-ledger/internal/ledger"
	"github.com/baharkarakas/point-ledger/internal/models"
	repo "github.com/baharkarakas/point-ledger/internal/repository"
	"github.com/baharkarakas/point-ledger/internal/services"
	"github.com/baharkarakas/point-ledger/internal/worker"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithConfig(t, config.Config{Env: "dev", RateRPS: 0, JWTSecret: "test-secret", JWTIssuer: "point-ledger-test"})
}

func newTestServerWithConfig(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()

	balances := ledger.NewBalanceStore()
	history := ledger.NewHistoryStore()
	engine := ledger.NewEngine(balances, history)
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	svc := services.NewPointService(engine, balances, history, repo.NoopArchive{}, wp)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTSecret+"-refresh", cfg.JWTIssuer, time.Minute, time.Hour)

	srv := httptest.NewServer(NewRouter(cfg, tm, svc))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer dev-tester")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) httpx.APIError {
	t.Helper()
	defer resp.Body.Close()
	var apiErr httpx.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	return apiErr
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PointsRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/points/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ChargeAndReadBack(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/v1/points/1/charge", map[string]int64{"amount": 1000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var b models.Balance
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	resp.Body.Close()
	assert.Equal(t, int64(1), b.UserID)
	assert.Equal(t, int64(1000), b.Amount)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/points/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	resp.Body.Close()
	assert.Equal(t, int64(1000), b.Amount)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/points/1/histories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recs []models.PointRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	resp.Body.Close()
	require.Len(t, recs, 1)
	assert.Equal(t, models.RecordCharge, recs[0].Kind)
}

func TestRouter_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	// topped-up user for the use-side cases
	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/v1/points/2/charge", map[string]int64{"amount": 100_000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	tests := []struct {
		name       string
		method     string
		path       string
		amount     int64
		wantStatus int
		wantCode   string
	}{
		{"charge over ceiling", http.MethodPatch, "/api/v1/points/1/charge", 1_500_000, http.StatusUnprocessableEntity, "limit_exceeded"},
		{"use with insufficient funds", http.MethodPatch, "/api/v1/points/1/use", 5000, http.StatusUnprocessableEntity, "insufficient_funds"},
		{"use above verification threshold", http.MethodPatch, "/api/v1/points/2/use", 60_000, http.StatusForbidden, "authentication_required"},
		{"duplicate charge", http.MethodPatch, "/api/v1/points/2/charge", 100_000, http.StatusConflict, "suspicious_activity"},
		{"zero amount", http.MethodPatch, "/api/v1/points/1/charge", 0, http.StatusBadRequest, "invalid_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, tt.method, srv.URL+tt.path, map[string]int64{"amount": tt.amount})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			apiErr := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestRouter_BadUserID(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/points/abc", "/api/v1/points/0"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		apiErr := decodeError(t, resp)
		assert.Equal(t, "invalid_user", apiErr.Code)
	}
}

func TestRouter_DevLoginIssuesUsableToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"tester","role":"user"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/points/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", tok.AccessToken))
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestRouter_ProdLoginVerifiesPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	srv := newTestServerWithConfig(t, config.Config{
		Env:              "prod",
		RateRPS:          0,
		JWTSecret:        "test-secret",
		JWTIssuer:        "point-ledger-test",
		AuthUser:         "ops",
		AuthPasswordHash: hash,
	})

	// wrong password
	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"ops","password":"wrong"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// unknown user
	resp, err = http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"nobody","password":"correct-horse"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// missing password
	resp, err = http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"ops"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// valid credential yields a token that passes the points auth
	resp, err = http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"ops","password":"correct-horse"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/points/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestRouter_ProdLoginUnconfigured(t *testing.T) {
	srv := newTestServerWithConfig(t, config.Config{
		Env: "prod", RateRPS: 0, JWTSecret: "test-secret", JWTIssuer: "point-ledger-test",
	})

	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"user_id":"ops","password":"pw"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
