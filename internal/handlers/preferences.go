package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cryptodash/internal/models"
	"cryptodash/internal/services"
)

type PreferencesHandler struct {
	prefsService services.PreferencesServiceInterface
}

func NewPreferencesHandler(prefsService services.PreferencesServiceInterface) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsService,
	}
}

// GetFavorites handles GET /api/v1/preferences/favorites requests
// @Summary List Favorites
// @Description List the favorited asset ids in insertion order
// @Tags preferences
// @Produce json
// @Success 200 {object} map[string]interface{} "Favorite ids"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/favorites [get]
func (h *PreferencesHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.prefsService.Favorites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ToggleFavorite handles POST /api/v1/preferences/favorites/:id/toggle requests
// @Summary Toggle a Favorite
// @Description Flip an asset's favorite membership and report the new state
// @Tags preferences
// @Produce json
// @Param id path string true "Asset id"
// @Success 200 {object} map[string]interface{} "New membership state"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/favorites/{id}/toggle [post]
func (h *PreferencesHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")

	favorited, err := h.prefsService.ToggleFavorite(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"favorited": favorited,
	})
}

// AddFavorite handles POST /api/v1/preferences/favorites/:id requests
// @Summary Add a Favorite
// @Description Add an asset id to the favorites; adding twice is a no-op
// @Tags preferences
// @Produce json
// @Param id path string true "Asset id"
// @Success 200 {object} map[string]interface{} "Favorite added"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/favorites/{id} [post]
func (h *PreferencesHandler) AddFavorite(c *gin.Context) {
	id := c.Param("id")

	if err := h.prefsService.AddFavorite(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "favorited": true})
}

// RemoveFavorite handles DELETE /api/v1/preferences/favorites/:id requests
// @Summary Remove a Favorite
// @Description Remove an asset id from the favorites; missing ids are not an error
// @Tags preferences
// @Produce json
// @Param id path string true "Asset id"
// @Success 200 {object} map[string]interface{} "Favorite removed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/favorites/{id} [delete]
func (h *PreferencesHandler) RemoveFavorite(c *gin.Context) {
	id := c.Param("id")

	if err := h.prefsService.RemoveFavorite(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "favorited": false})
}

// GetSearchHistory handles GET /api/v1/preferences/search-history requests
// @Summary List Search History
// @Description List past search terms, most recent first, at most ten
// @Tags preferences
// @Produce json
// @Success 200 {object} map[string]interface{} "Search terms"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/search-history [get]
func (h *PreferencesHandler) GetSearchHistory(c *gin.Context) {
	history, err := h.prefsService.SearchHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// AddSearchTerm handles POST /api/v1/preferences/search-history requests
// @Summary Record a Search Term
// @Description Record a search term: trimmed, lowercased, deduplicated, capped at ten entries
// @Tags preferences
// @Accept json
// @Produce json
// @Param term body object true "Search term" SchemaExample({"term": "bitcoin"})
// @Success 200 {object} map[string]interface{} "Updated history"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/search-history [post]
func (h *PreferencesHandler) AddSearchTerm(c *gin.Context) {
	var payload struct {
		Term string `json:"term"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid term payload: " + err.Error()})
		return
	}

	if err := h.prefsService.AddSearchTerm(payload.Term); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	history, err := h.prefsService.SearchHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// ClearSearchHistory handles DELETE /api/v1/preferences/search-history requests
// @Summary Clear Search History
// @Description Remove every stored search term
// @Tags preferences
// @Produce json
// @Success 200 {object} map[string]interface{} "History cleared"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/search-history [delete]
func (h *PreferencesHandler) ClearSearchHistory(c *gin.Context) {
	if err := h.prefsService.ClearSearchHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "search history cleared"})
}

type liveConfigPayload struct {
	Enabled           bool  `json:"enabled"`
	IntervalMs        int64 `json:"intervalMs"`
	BackgroundUpdates bool  `json:"backgroundUpdates"`
}

// GetLiveConfig handles GET /api/v1/preferences/live-config requests
// @Summary Get Live Update Config
// @Description Get the persisted live-update configuration
// @Tags preferences
// @Produce json
// @Success 200 {object} liveConfigPayload "Live update config"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/live-config [get]
func (h *PreferencesHandler) GetLiveConfig(c *gin.Context) {
	config, err := h.prefsService.LiveConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, liveConfigPayload{
		Enabled:           config.Enabled,
		IntervalMs:        config.Interval.Milliseconds(),
		BackgroundUpdates: config.BackgroundUpdates,
	})
}

// UpdateLiveConfig handles PUT /api/v1/preferences/live-config requests
// @Summary Update Live Update Config
// @Description Persist a new live-update configuration
// @Tags preferences
// @Accept json
// @Produce json
// @Param config body liveConfigPayload true "Live update config"
// @Success 200 {object} liveConfigPayload "Stored config"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /preferences/live-config [put]
func (h *PreferencesHandler) UpdateLiveConfig(c *gin.Context) {
	var payload liveConfigPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config payload: " + err.Error()})
		return
	}

	if payload.IntervalMs < 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intervalMs must be at least 1000"})
		return
	}

	config := models.LiveUpdateConfig{
		Enabled:           payload.Enabled,
		Interval:          time.Duration(payload.IntervalMs) * time.Millisecond,
		BackgroundUpdates: payload.BackgroundUpdates,
	}

	if err := h.prefsService.UpdateLiveConfig(config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// RegisterPreferencesRoutes registers preference routes
func RegisterPreferencesRoutes(router *gin.RouterGroup, handler *PreferencesHandler) {
	preferences := router.Group("/preferences")
	{
		preferences.GET("/favorites", handler.GetFavorites)
		preferences.POST("/favorites/:id", handler.AddFavorite)
		preferences.DELETE("/favorites/:id", handler.RemoveFavorite)
		preferences.POST("/favorites/:id/toggle", handler.ToggleFavorite)

		preferences.GET("/search-history", handler.GetSearchHistory)
		preferences.POST("/search-history", handler.AddSearchTerm)
		preferences.DELETE("/search-history", handler.ClearSearchHistory)

		preferences.GET("/live-config", handler.GetLiveConfig)
		preferences.PUT("/live-config", handler.UpdateLiveConfig)
	}
}
