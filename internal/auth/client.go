package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"casino-webapp-backend/internal/models"
)

// SessionPayload is what the auth service hands back for a successful
// login or session restore.
type SessionPayload struct {
	Credential string              `json:"credential"`
	User       *models.UserProfile `json:"user"`
}

// Client talks to the external auth service. The gateway never mints or
// validates credentials itself; it only relays them.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*SessionPayload, error) {
	body := map[string]string{"email": email, "password": password}
	return c.exchange(ctx, "/v1/auth/login", body)
}

// RestoreSession trades the long-lived refresh credential for a fresh
// session. A credential that is already past its expiry is rejected
// locally without spending a network call.
func (c *Client) RestoreSession(ctx context.Context, refreshCredential string) (*SessionPayload, error) {
	if refreshCredential == "" {
		return nil, fmt.Errorf("no refresh credential")
	}
	if credentialExpired(refreshCredential) {
		return nil, fmt.Errorf("refresh credential expired")
	}

	body := map[string]string{"refresh_credential": refreshCredential}
	return c.exchange(ctx, "/v1/auth/restore", body)
}

// Logout tells the auth service to revoke the credential. Best-effort:
// callers clear local state regardless of the outcome here.
func (c *Client) Logout(ctx context.Context, credential string) error {
	data, err := json.Marshal(map[string]string{"credential": credential})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/logout", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout rejected: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, path string, body map[string]string) (*SessionPayload, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service rejected request: status %d", resp.StatusCode)
	}

	var payload SessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed auth response: %v", err)
	}
	if payload.Credential == "" {
		return nil, fmt.Errorf("auth response missing credential")
	}

	return &payload, nil
}

// credentialExpired inspects a JWT-shaped credential's exp claim without
// verifying its signature; verification is the auth service's job. Data
// that does not parse as a JWT is passed through for the server to judge.
func credentialExpired(credential string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
