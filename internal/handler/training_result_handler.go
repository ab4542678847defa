package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
	"github.com/skilltrack/tms-api/pkg/response"
)

// TrainingResultHandler exposes training result endpoints.
type TrainingResultHandler struct {
	results *service.TrainingResultService
}

// NewTrainingResultHandler constructs TrainingResultHandler.
func NewTrainingResultHandler(results *service.TrainingResultService) *TrainingResultHandler {
	return &TrainingResultHandler{results: results}
}

// List returns training results, optionally filtered by trainee external id.
func (h *TrainingResultHandler) List(c *gin.Context) {
	if traineeID := c.Query("trainee_id"); traineeID != "" {
		results, err := h.results.ListByTrainee(c.Request.Context(), traineeID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, results)
		return
	}
	results, err := h.results.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Get returns one training result by id.
func (h *TrainingResultHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.results.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create records a new training result.
func (h *TrainingResultHandler) Create(c *gin.Context) {
	var req service.CreateTrainingResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update applies a partial update to a training result.
func (h *TrainingResultHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.TrainingResultPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
