package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
	"github.com/skilltrack/tms-api/pkg/response"
)

// TraineeHandler exposes trainee endpoints.
type TraineeHandler struct {
	trainees *service.TraineeService
}

// NewTraineeHandler constructs TraineeHandler.
func NewTraineeHandler(trainees *service.TraineeService) *TraineeHandler {
	return &TraineeHandler{trainees: trainees}
}

// List returns every trainee.
func (h *TraineeHandler) List(c *gin.Context) {
	trainees, err := h.trainees.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainees)
}

// Get returns one trainee by numeric id.
func (h *TraineeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	trainee, err := h.trainees.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainee)
}

// Create enrolls a new trainee.
func (h *TraineeHandler) Create(c *gin.Context) {
	var req service.CreateTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainee, err := h.trainees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, trainee)
}

// Update applies a partial update to a trainee.
func (h *TraineeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.TraineePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainee, err := h.trainees.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainee)
}
