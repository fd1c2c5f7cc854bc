package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/middleware"
	"casino-webapp-backend/internal/models"
	"casino-webapp-backend/internal/session"
)

type UserHandler struct {
	store   *session.Store
	queries *auth.Queries
}

func NewUserHandler(store *session.Store, queries *auth.Queries) *UserHandler {
	return &UserHandler{
		store:   store,
		queries: queries,
	}
}

// GetCurrentUser reports the admitted user plus the chrome flag the
// guard computed for this navigation.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user := h.queries.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"admin_tier": h.queries.IsAdminTier(),
		"chrome":     !c.GetBool(middleware.CtxChromeSuppressed),
	})
}

// UpdateProfile merges a partial profile into the session. Other
// components holding the same store observe the change through its
// subscription API.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.store.Update(patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": h.queries.CurrentUser()})
}
