package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cryptodash/internal/engines/wizard"
	"cryptodash/internal/integrations/optimizer"
	"cryptodash/internal/models"
	"cryptodash/internal/services"
)

type SimulationHandler struct {
	simulationService services.SimulationServiceInterface
}

func NewSimulationHandler(simulationService services.SimulationServiceInterface) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// GetWizardState handles GET /api/v1/simulation/wizard requests
// @Summary Get Wizard State
// @Description Get the current step, selections, parameters and submission state of the simulation wizard
// @Tags simulation
// @Produce json
// @Success 200 {object} wizard.State "Wizard state"
// @Router /simulation/wizard [get]
func (h *SimulationHandler) GetWizardState(c *gin.Context) {
	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// SetWizardCoins handles POST /api/v1/simulation/wizard/coins requests
// @Summary Set Selected Coins
// @Description Replace the wizard's coin selection
// @Tags simulation
// @Accept json
// @Produce json
// @Param coins body []models.Asset true "Selected assets"
// @Success 200 {object} wizard.State "Updated wizard state"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Submission in progress"
// @Router /simulation/wizard/coins [post]
func (h *SimulationHandler) SetWizardCoins(c *gin.Context) {
	var coins []models.Asset
	if err := c.ShouldBindJSON(&coins); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coin payload: " + err.Error()})
		return
	}

	if err := h.simulationService.SetCoins(coins); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// SetWizardParams handles POST /api/v1/simulation/wizard/params requests
// @Summary Update Simulation Parameters
// @Description Merge timeframe, optimization type, risk tolerance and initial investment into the wizard parameters
// @Tags simulation
// @Accept json
// @Produce json
// @Param params body models.SimulationParams true "Parameters to merge"
// @Success 200 {object} wizard.State "Updated wizard state"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Submission in progress"
// @Router /simulation/wizard/params [post]
func (h *SimulationHandler) SetWizardParams(c *gin.Context) {
	var params models.SimulationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params payload: " + err.Error()})
		return
	}

	if params.Timeframe != "" && !params.Timeframe.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeframe"})
		return
	}
	if params.OptimizationType != "" && !params.OptimizationType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid optimization type"})
		return
	}
	if params.RiskTolerance != "" && !params.RiskTolerance.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid risk tolerance"})
		return
	}

	if err := h.simulationService.UpdateParams(params); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// WizardNext handles POST /api/v1/simulation/wizard/next requests
// @Summary Advance the Wizard
// @Description Advance one step when the current step is valid; from the preview step this submits the request to the optimizer
// @Tags simulation
// @Produce json
// @Success 200 {object} wizard.State "Updated wizard state"
// @Failure 409 {object} map[string]interface{} "Submission in progress"
// @Failure 422 {object} map[string]interface{} "Current step invalid or submission failed"
// @Router /simulation/wizard/next [post]
func (h *SimulationHandler) WizardNext(c *gin.Context) {
	if err := h.simulationService.Wizard().Next(c.Request.Context()); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// WizardPrevious handles POST /api/v1/simulation/wizard/previous requests
// @Summary Step the Wizard Back
// @Description Step back one step; allowed regardless of validity
// @Tags simulation
// @Produce json
// @Success 200 {object} wizard.State "Updated wizard state"
// @Failure 409 {object} map[string]interface{} "Submission in progress"
// @Failure 422 {object} map[string]interface{} "Already at the first step"
// @Router /simulation/wizard/previous [post]
func (h *SimulationHandler) WizardPrevious(c *gin.Context) {
	if err := h.simulationService.Wizard().Previous(); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// WizardGoToStep handles POST /api/v1/simulation/wizard/step/:n requests
// @Summary Jump to a Wizard Step
// @Description Jump directly to any step in range; intermediate steps are not re-validated
// @Tags simulation
// @Produce json
// @Param n path int true "Target step" minimum(0) maximum(4)
// @Success 200 {object} wizard.State "Updated wizard state"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Submission in progress"
// @Router /simulation/wizard/step/{n} [post]
func (h *SimulationHandler) WizardGoToStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step number"})
		return
	}

	if err := h.simulationService.Wizard().GoToStep(step); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// CloseWizard handles DELETE /api/v1/simulation/wizard requests
// @Summary Close the Wizard
// @Description Reset the wizard to step 0 with empty selections and default parameters; no partial state survives
// @Tags simulation
// @Produce json
// @Success 200 {object} wizard.State "Reset wizard state"
// @Router /simulation/wizard [delete]
func (h *SimulationHandler) CloseWizard(c *gin.Context) {
	h.simulationService.Wizard().Reset()
	c.JSON(http.StatusOK, h.simulationService.Wizard().State())
}

// GetHistory handles GET /api/v1/simulation/history requests
// @Summary List Simulation History
// @Description List the persisted history of past simulation outcomes, most recent first
// @Tags simulation
// @Produce json
// @Success 200 {object} map[string]interface{} "History items"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /simulation/history [get]
func (h *SimulationHandler) GetHistory(c *gin.Context) {
	items, err := h.simulationService.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ClearHistory handles DELETE /api/v1/simulation/history requests
// @Summary Clear Simulation History
// @Description Remove every persisted history item
// @Tags simulation
// @Produce json
// @Success 200 {object} map[string]interface{} "History cleared"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /simulation/history [delete]
func (h *SimulationHandler) ClearHistory(c *gin.Context) {
	if err := h.simulationService.ClearHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

// GetRemoteHistory handles GET /api/v1/simulation/history/remote requests
// @Summary List Remote Simulation History
// @Description Proxy the optimizer service's paged history listing
// @Tags simulation
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param optimizationType query string false "Filter by optimization type"
// @Param status query string false "Filter by status"
// @Param dateFrom query string false "Filter from date (ISO)"
// @Param dateTo query string false "Filter to date (ISO)"
// @Success 200 {object} models.HistoryPage "Paged history"
// @Failure 502 {object} map[string]interface{} "Upstream error"
// @Router /simulation/history/remote [get]
func (h *SimulationHandler) GetRemoteHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filters := optimizer.HistoryFilters{
		OptimizationType: c.Query("optimizationType"),
		Status:           c.Query("status"),
		DateFrom:         c.Query("dateFrom"),
		DateTo:           c.Query("dateTo"),
	}

	pageData, err := h.simulationService.RemoteHistory(c.Request.Context(), page, limit, filters)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pageData)
}

// RerunSimulation handles POST /api/v1/simulation/rerun/:id requests
// @Summary Re-run a Saved Simulation
// @Description Re-validate and resubmit the request stored with a history item
// @Tags simulation
// @Produce json
// @Param id path string true "History item id"
// @Success 200 {object} models.SimulationResponse "New simulation result"
// @Failure 404 {object} map[string]interface{} "History item not found"
// @Failure 422 {object} map[string]interface{} "Validation errors"
// @Failure 502 {object} map[string]interface{} "Optimizer error"
// @Router /simulation/rerun/{id} [post]
func (h *SimulationHandler) RerunSimulation(c *gin.Context) {
	id := c.Param("id")

	response, validationErrors, err := h.simulationService.Rerun(c.Request.Context(), id)
	if err != nil {
		var optErr *optimizer.Error
		if errors.As(err, &optErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": optErr.Message, "code": optErr.Code})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if len(validationErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors})
		return
	}

	c.JSON(http.StatusOK, response)
}

// transitionError maps wizard errors to HTTP statuses: submission in
// flight is a conflict, everything else an unprocessable transition.
func (h *SimulationHandler) transitionError(c *gin.Context, err error) {
	if errors.Is(err, wizard.ErrSubmitting) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var validationErr *wizard.ValidationFailedError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErr.Errors})
		return
	}

	var optErr *optimizer.Error
	if errors.As(err, &optErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": optErr.Message, "code": optErr.Code})
		return
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// RegisterSimulationRoutes registers simulation routes
func RegisterSimulationRoutes(router *gin.RouterGroup, handler *SimulationHandler) {
	simulation := router.Group("/simulation")
	{
		simulation.GET("/wizard", handler.GetWizardState)
		simulation.DELETE("/wizard", handler.CloseWizard)
		simulation.POST("/wizard/coins", handler.SetWizardCoins)
		simulation.POST("/wizard/params", handler.SetWizardParams)
		simulation.POST("/wizard/next", handler.WizardNext)
		simulation.POST("/wizard/previous", handler.WizardPrevious)
		simulation.POST("/wizard/step/:n", handler.WizardGoToStep)

		simulation.GET("/history", handler.GetHistory)
		simulation.DELETE("/history", handler.ClearHistory)
		simulation.GET("/history/remote", handler.GetRemoteHistory)
		simulation.POST("/rerun/:id", handler.RerunSimulation)
	}
}
