package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
	"github.com/skilltrack/tms-api/pkg/response"
)

// TrainerHandler exposes trainer endpoints.
type TrainerHandler struct {
	trainers *service.TrainerService
}

// NewTrainerHandler constructs TrainerHandler.
func NewTrainerHandler(trainers *service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainers: trainers}
}

// List returns every trainer.
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainers)
}

// Get returns one trainer by id.
func (h *TrainerHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	trainer, err := h.trainers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer)
}

// Create registers a new trainer.
func (h *TrainerHandler) Create(c *gin.Context) {
	var req service.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainer, err := h.trainers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, trainer)
}

// Update applies a partial update to a trainer.
func (h *TrainerHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.TrainerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainer, err := h.trainers.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer)
}
