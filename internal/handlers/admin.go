package handlers

import (
	"net/http"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	log *zap.Logger
}

func NewAdminHandler(log *zap.Logger) *AdminHandler {
	return &AdminHandler{log: log}
}

type createAssignmentRequest struct {
	CandidateID   *uint     `json:"candidate_id"`
	SupervisorID  *uint     `json:"supervisor_id"`
	TestID        uint      `json:"test_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	ExpiryDate    time.Time `json:"expiry_date" binding:"required"`
	TotalPages    int       `json:"total_pages"`
}

// CreateAssignment assigns a test to a candidate or to a supervisor for
// feedback, with its availability window.
func (h *AdminHandler) CreateAssignment(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment payload"})
		return
	}
	if (req.CandidateID == nil) == (req.SupervisorID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of candidate_id or supervisor_id is required"})
		return
	}
	if !req.ExpiryDate.After(req.ScheduledDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be after scheduled_date"})
		return
	}
	if req.TotalPages <= 0 {
		req.TotalPages = 1
	}

	assignment := &models.TestAssignment{
		CandidateID:   req.CandidateID,
		SupervisorID:  req.SupervisorID,
		TestID:        req.TestID,
		ScheduledDate: req.ScheduledDate.UTC(),
		ExpiryDate:    req.ExpiryDate.UTC(),
	}
	if err := repository.CreateAssignment(assignment, req.TotalPages); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}
