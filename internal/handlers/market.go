package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cryptodash/internal/models"
	"cryptodash/internal/services"
)

type MarketHandler struct {
	marketService services.MarketServiceInterface
	prefsService  services.PreferencesServiceInterface
}

func NewMarketHandler(marketService services.MarketServiceInterface, prefsService services.PreferencesServiceInterface) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
		prefsService:  prefsService,
	}
}

// GetAssets handles GET /api/v1/market/assets requests
// @Summary List Market Assets
// @Description Fetch the current asset snapshot filtered by search text, numeric ranges and category
// @Tags market
// @Produce json
// @Param search query string false "Case-insensitive match on name, symbol or id"
// @Param category query string false "Category bucket" Enums(all,rising,falling,stable) default(all)
// @Param minPrice query number false "Minimum price in USD"
// @Param maxPrice query number false "Maximum price in USD"
// @Param minChange query number false "Minimum 24h change percent"
// @Param maxChange query number false "Maximum 24h change percent"
// @Param minRank query int false "Minimum rank"
// @Param maxRank query int false "Maximum rank"
// @Param onlyFavorites query bool false "Restrict to favorited assets"
// @Success 200 {object} map[string]interface{} "Filtered assets"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /market/assets [get]
func (h *MarketHandler) GetAssets(c *gin.Context) {
	spec := parseFilterSpec(c)

	favorites := map[string]bool{}
	if spec.OnlyFavorites {
		set, err := h.prefsService.FavoriteSet()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		favorites = set
	}

	assets, err := h.marketService.FilteredAssets(c.Request.Context(), spec, favorites)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Record the search term for the persisted search history. The live
	// search text itself is never persisted; bookkeeping failures never
	// block the read path.
	if spec.Search != "" {
		if err := h.prefsService.AddSearchTerm(spec.Search); err != nil {
			log.Printf("Warning: failed to record search term: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"count":  len(assets),
	})
}

// GetAsset handles GET /api/v1/market/assets/:id requests
// @Summary Get Single Asset
// @Description Fetch one asset's latest market snapshot
// @Tags market
// @Produce json
// @Param id path string true "Asset id (e.g. bitcoin)"
// @Success 200 {object} models.Asset "Asset snapshot"
// @Failure 502 {object} map[string]interface{} "Upstream fetch failed"
// @Router /market/assets/{id} [get]
func (h *MarketHandler) GetAsset(c *gin.Context) {
	id := c.Param("id")

	asset, err := h.marketService.GetAssetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

// GetAssetHistory handles GET /api/v1/market/assets/:id/history requests
// @Summary Get Asset Price History
// @Description Fetch point-in-time prices for one asset
// @Tags market
// @Produce json
// @Param id path string true "Asset id"
// @Param interval query string false "History interval" default(h1) Enums(m1,m5,m15,m30,h1,h2,h6,h12,d1)
// @Param start query int false "Start time in milliseconds"
// @Param end query int false "End time in milliseconds"
// @Success 200 {object} map[string]interface{} "Price history"
// @Failure 502 {object} map[string]interface{} "Upstream fetch failed"
// @Router /market/assets/{id}/history [get]
func (h *MarketHandler) GetAssetHistory(c *gin.Context) {
	id := c.Param("id")
	interval := c.DefaultQuery("interval", "h1")

	var start, end *int64
	if startStr := c.Query("start"); startStr != "" {
		if parsed, err := strconv.ParseInt(startStr, 10, 64); err == nil {
			start = &parsed
		}
	}
	if endStr := c.Query("end"); endStr != "" {
		if parsed, err := strconv.ParseInt(endStr, 10, 64); err == nil {
			end = &parsed
		}
	}

	points, err := h.marketService.GetAssetHistory(c.Request.Context(), id, interval, start, end)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   id,
		"data": points,
	})
}

// GetRankings handles GET /api/v1/market/rankings requests
// @Summary Get Top Rankings
// @Description Get the top-5 leaderboards by price, 24h volume and absolute 24h change
// @Tags market
// @Produce json
// @Success 200 {object} models.TopRankings "Leaderboards"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /market/rankings [get]
func (h *MarketHandler) GetRankings(c *gin.Context) {
	rankings, err := h.marketService.Rankings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetLiveStats handles GET /api/v1/market/live-stats requests
// @Summary Get Live Update Stats
// @Description Get the aggregate rising/falling/stable counts and changed asset ids of the latest snapshot
// @Tags market
// @Produce json
// @Success 200 {object} models.LiveStats "Live stats"
// @Router /market/live-stats [get]
func (h *MarketHandler) GetLiveStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketService.LiveStats())
}

// AckLiveChanges handles POST /api/v1/market/live-stats/ack requests
// @Summary Acknowledge Change Highlights
// @Description Clear the changed-asset markers once the consumer has rendered them
// @Tags market
// @Produce json
// @Success 200 {object} map[string]interface{} "Acknowledged"
// @Router /market/live-stats/ack [post]
func (h *MarketHandler) AckLiveChanges(c *gin.Context) {
	h.marketService.AckChanges()
	c.JSON(http.StatusOK, gin.H{"message": "change highlights cleared"})
}

// RefreshAssets handles POST /api/v1/market/refresh requests
// @Summary Force a Snapshot Refresh
// @Description Drop the cached snapshot and fetch a fresh one from upstream
// @Tags market
// @Produce json
// @Success 200 {object} map[string]interface{} "Fresh assets"
// @Failure 502 {object} map[string]interface{} "Upstream fetch failed"
// @Router /market/refresh [post]
func (h *MarketHandler) RefreshAssets(c *gin.Context) {
	assets, err := h.marketService.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"count":  len(assets),
	})
}

// GetCandles handles GET /api/v1/market/candles/:symbol requests
// @Summary Get Chart Candles
// @Description Fetch OHLCV candles for the asset detail chart
// @Tags market
// @Produce json
// @Param symbol path string true "Trading pair (e.g. BTCUSDT)"
// @Param interval query string false "Kline interval" default(1h) Enums(1m,3m,5m,15m,30m,1h,2h,4h,6h,8h,12h,1d,3d,1w,1M)
// @Param limit query int false "Number of candles (1-1000)" default(500)
// @Param startTime query int false "Start time in milliseconds"
// @Param endTime query int false "End time in milliseconds"
// @Success 200 {object} models.CandleResponse "Candles"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 502 {object} map[string]interface{} "Upstream fetch failed"
// @Router /market/candles/{symbol} [get]
func (h *MarketHandler) GetCandles(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol parameter is required"})
		return
	}

	interval := c.DefaultQuery("interval", "1h")
	if !h.marketService.ValidateCandleInterval(interval) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid interval. Valid intervals: 1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M",
		})
		return
	}

	limit := 500
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	var startTime, endTime *int64
	if startStr := c.Query("startTime"); startStr != "" {
		if parsed, err := strconv.ParseInt(startStr, 10, 64); err == nil {
			startTime = &parsed
		}
	}
	if endStr := c.Query("endTime"); endStr != "" {
		if parsed, err := strconv.ParseInt(endStr, 10, 64); err == nil {
			endTime = &parsed
		}
	}

	candles, err := h.marketService.GetCandles(c.Request.Context(), symbol, interval, limit, startTime, endTime)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.CandleResponse{
		Symbol: symbol,
		Data:   candles,
	})
}

// parseFilterSpec builds a FilterSpec from query parameters, starting from
// the wide-open defaults.
func parseFilterSpec(c *gin.Context) models.FilterSpec {
	spec := models.DefaultFilterSpec()

	spec.Search = c.Query("search")

	if category := c.Query("category"); category != "" {
		spec.Category = models.FilterCategory(category)
	}

	spec.OnlyFavorites = c.Query("onlyFavorites") == "true"

	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		spec.PriceRange[0] = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		spec.PriceRange[1] = v
	}
	if v, err := strconv.ParseFloat(c.Query("minMarketCap"), 64); err == nil {
		spec.MarketCapRange[0] = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxMarketCap"), 64); err == nil {
		spec.MarketCapRange[1] = v
	}
	if v, err := strconv.ParseFloat(c.Query("minChange"), 64); err == nil {
		spec.ChangeRange[0] = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxChange"), 64); err == nil {
		spec.ChangeRange[1] = v
	}
	if v, err := strconv.Atoi(c.Query("minRank")); err == nil {
		spec.RankRange[0] = v
	}
	if v, err := strconv.Atoi(c.Query("maxRank")); err == nil {
		spec.RankRange[1] = v
	}

	return spec
}

// RegisterMarketRoutes registers market data routes
func RegisterMarketRoutes(router *gin.RouterGroup, handler *MarketHandler) {
	market := router.Group("/market")
	{
		market.GET("/assets", handler.GetAssets)
		market.POST("/refresh", handler.RefreshAssets)
		market.GET("/assets/:id", handler.GetAsset)
		market.GET("/assets/:id/history", handler.GetAssetHistory)
		market.GET("/rankings", handler.GetRankings)
		market.GET("/live-stats", handler.GetLiveStats)
		market.POST("/live-stats/ack", handler.AckLiveChanges)
		market.GET("/candles/:symbol", handler.GetCandles)
	}
}
