package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/loader"
	"casino-webapp-backend/internal/middleware"
	"casino-webapp-backend/internal/registry"
)

type GameHandler struct {
	registry *registry.Registry
	loader   *loader.Loader
	queries  *auth.Queries
}

func NewGameHandler(reg *registry.Registry, ldr *loader.Loader, queries *auth.Queries) *GameHandler {
	return &GameHandler{
		registry: reg,
		loader:   ldr,
		queries:  queries,
	}
}

func (h *GameHandler) ListGames(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"games": h.registry.ByCategory(category)})
		return
	}
	if provider := c.Query("provider"); provider != "" {
		c.JSON(http.StatusOK, gin.H{"games": h.registry.ByProvider(provider)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": h.registry.Active()})
}

func (h *GameHandler) FeaturedGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.registry.Featured()})
}

func (h *GameHandler) PopularGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.registry.Popular()})
}

func (h *GameHandler) NewGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.registry.New()})
}

func (h *GameHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.registry.Categories()})
}

func (h *GameHandler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.registry.Providers()})
}

func (h *GameHandler) SearchGames(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": h.registry.Search(query)})
}

// GetGame returns one active descriptor. An unknown slug is a normal
// outcome for the lobby, not a server error.
func (h *GameHandler) GetGame(c *gin.Context) {
	descriptor, ok := h.registry.GetBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"state": "unavailable",
			"error": "Game unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": descriptor})
}

// LaunchGame resolves the slug and mounts its module. The three failure
// shapes stay distinct on the wire: unavailable (retired or mistyped
// slug), load_failed (retryable bundle problem), and a plain redirect
// when the composition guard was bypassed.
func (h *GameHandler) LaunchGame(c *gin.Context) {
	launcher := c.Query(middleware.LauncherQueryFlag) == "1"

	launch := h.loader.Load(c.Request.Context(), c.Param("slug"), launcher)

	switch launch.State {
	case loader.NotFound:
		c.JSON(http.StatusNotFound, gin.H{
			"state": "unavailable",
			"error": "Game unavailable",
		})

	case loader.LoadFailed:
		c.JSON(http.StatusBadGateway, gin.H{
			"state":     "load_failed",
			"error":     "Game failed to load",
			"retryable": true,
		})

	case loader.Denied:
		c.Redirect(http.StatusFound, auth.PathLogin)

	case loader.Ready:
		chrome := !launch.Launcher && !c.GetBool(middleware.CtxChromeSuppressed)
		c.JSON(http.StatusOK, gin.H{
			"state":  "ready",
			"game":   launch.Descriptor,
			"chrome": chrome,
			"module": gin.H{
				"entry_url": launch.Module.EntryURL(),
				"version":   launch.Module.Version(),
			},
		})
	}
}

// AdminOverview is the admin landing payload.
func (h *GameHandler) AdminOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":         h.queries.CurrentUser(),
		"active_games": h.registry.Len(),
		"categories":   h.registry.Categories(),
		"providers":    h.registry.Providers(),
	})
}

// AdminGames dumps the full catalog, inactive descriptors included.
func (h *GameHandler) AdminGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.registry.All()})
}
