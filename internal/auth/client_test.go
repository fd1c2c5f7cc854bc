package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/models"
)

func authServiceStub(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "player@example.com" || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		json.NewEncoder(w).Encode(auth.SessionPayload{
			Credential: "cred-abc",
			User:       &models.UserProfile{ID: "u-1", Email: body["email"], Role: models.RolePlayer},
		})
	})
	mux.HandleFunc("/v1/auth/restore", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_credential"] != "refresh-ok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		json.NewEncoder(w).Encode(auth.SessionPayload{
			Credential: "cred-restored",
			User:       &models.UserProfile{ID: "u-1", Role: models.RoleAdmin},
		})
	})
	mux.HandleFunc("/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLogin(t *testing.T) {
	var hits atomic.Int64
	srv := authServiceStub(t, &hits)
	client := auth.NewClient(srv.URL, time.Second)

	payload, err := client.Login(context.Background(), "player@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if payload.Credential != "cred-abc" || payload.User == nil {
		t.Errorf("Unexpected login payload: %+v", payload)
	}

	if _, err := client.Login(context.Background(), "player@example.com", "wrong"); err == nil {
		t.Error("Expected error for rejected login")
	}
}

func TestClientRestoreSession(t *testing.T) {
	var hits atomic.Int64
	srv := authServiceStub(t, &hits)
	client := auth.NewClient(srv.URL, time.Second)

	payload, err := client.RestoreSession(context.Background(), "refresh-ok")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if payload.Credential != "cred-restored" {
		t.Errorf("Unexpected restore payload: %+v", payload)
	}

	if _, err := client.RestoreSession(context.Background(), "refresh-bad"); err == nil {
		t.Error("Expected error for rejected restore")
	}
	if _, err := client.RestoreSession(context.Background(), ""); err == nil {
		t.Error("Expected error for empty refresh credential")
	}
}

func TestClientRestoreSkipsExpiredCredentialLocally(t *testing.T) {
	var hits atomic.Int64
	srv := authServiceStub(t, &hits)
	client := auth.NewClient(srv.URL, time.Second)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	before := hits.Load()
	if _, err := client.RestoreSession(context.Background(), token); err == nil {
		t.Error("Expected error for expired refresh credential")
	}
	if hits.Load() != before {
		t.Error("Expired credential should be rejected without a network call")
	}
}

func TestClientLogout(t *testing.T) {
	var hits atomic.Int64
	srv := authServiceStub(t, &hits)
	client := auth.NewClient(srv.URL, time.Second)

	if err := client.Logout(context.Background(), "cred-abc"); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
}

func TestClientUnreachableService(t *testing.T) {
	client := auth.NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("Expected error when auth service is unreachable")
	}
	if err := client.Logout(context.Background(), "cred-abc"); err == nil {
		t.Error("Expected error when logout target is unreachable")
	}
}
