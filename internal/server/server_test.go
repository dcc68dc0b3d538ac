package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/storage/sqlite"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	creds, err := auth.DefaultCredentials()
	if err != nil {
		t.Fatalf("DefaultCredentials failed: %v", err)
	}
	table, err := auth.NewCredentialTable(creds)
	if err != nil {
		t.Fatalf("NewCredentialTable failed: %v", err)
	}

	srv := httptest.NewServer(NewHandler(Deps{
		Store:         store,
		Authenticator: table,
		JWTManager:    auth.NewJWTManager("test-secret", time.Hour),
		Registry:      prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	srv := setupServer(t)
	code, body := get(t, srv.URL+"/healthz")
	if code != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", code, body)
	}
}

func TestMetricsAfterRPC(t *testing.T) {
	srv := setupServer(t)

	client := api.NewAuthServiceClient(http.DefaultClient, srv.URL)
	resp, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Username: "admin", Password: "admin123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	people := api.NewPeopleServiceClient(http.DefaultClient, srv.URL)
	req := connect.NewRequest(&api.ListPeopleRequest{})
	req.Header().Set("Authorization", "Bearer "+resp.Msg.Session.Token)
	if _, err := people.ListPeople(context.Background(), req); err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}

	code, body := get(t, srv.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("metrics status = %d", code)
	}
	for _, want := range []string{api.AuthServiceLoginProcedure, api.PeopleServiceListPeopleProcedure} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := setupServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+api.PeopleServiceListPeopleProcedure, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Errorf("Authorization not allowed: %q", resp.Header.Get("Access-Control-Allow-Headers"))
	}
}
