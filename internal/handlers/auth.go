package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/session"
)

// AuthClient is the slice of the auth service the handlers call.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*auth.SessionPayload, error)
	Logout(ctx context.Context, credential string) error
}

type AuthHandler struct {
	store  *session.Store
	client AuthClient
}

func NewAuthHandler(store *session.Store, client AuthClient) *AuthHandler {
	return &AuthHandler{
		store:  store,
		client: client,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Next     string `json:"next"`
}

// Login exchanges credentials at the auth service, persists the session,
// and tells the client where to navigate: the decoded next target that
// the admission guard preserved, or the role's landing page.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	payload, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.store.Write(payload.Credential, payload.User); err != nil {
		log.Printf("failed to persist session after login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	redirect := auth.PathPlayerHome
	if payload.User != nil {
		redirect = auth.LandingPathFor(payload.User.Role)
	}
	if next, ok := decodeNext(req.Next); ok {
		redirect = next
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     payload.User,
		"redirect": redirect,
	})
}

// Logout clears local state unconditionally and revokes the credential
// remotely on a best-effort basis. The remote call is never awaited in
// the critical path; the response goes out as soon as local state is
// gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	credential := h.store.Read().Credential

	h.store.Clear()

	if credential != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := h.client.Logout(ctx, credential); err != nil {
				log.Printf("remote logout failed, session cleared locally: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out",
		"redirect": auth.PathLogin,
	})
}

// decodeNext validates a next target preserved by a guard redirect.
// Only relative in-app paths are honored, so login can never bounce the
// user to a foreign origin.
func decodeNext(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return "", false
	}
	return decoded, true
}
