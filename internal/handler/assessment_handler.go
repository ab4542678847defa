package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
	"github.com/skilltrack/tms-api/pkg/response"
)

// AssessmentHandler exposes assessment endpoints.
type AssessmentHandler struct {
	assessments *service.AssessmentService
}

// NewAssessmentHandler constructs AssessmentHandler.
func NewAssessmentHandler(assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// List returns assessments, optionally filtered by trainee external id.
func (h *AssessmentHandler) List(c *gin.Context) {
	if traineeID := c.Query("trainee_id"); traineeID != "" {
		assessments, err := h.assessments.ListByTrainee(c.Request.Context(), traineeID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, assessments)
		return
	}
	assessments, err := h.assessments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments)
}

// Get returns one assessment by id.
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	assessment, err := h.assessments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// Create records a new assessment.
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.assessments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// Update applies a partial update to an assessment.
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.AssessmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.assessments.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}
