// server-side actions for a single test assignment: availability checks,
// start/resume, answer saving and final submission.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/activity"
	"github.com/musama5293/NPI-Portal-sub003/internal/lifecycle"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"
	"github.com/musama5293/NPI-Portal-sub003/internal/scoring"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AssignmentHandler struct {
	log *zap.Logger
}

func NewAssignmentHandler(log *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{log: log}
}

type availabilityResponse struct {
	Available            bool                    `json:"available"`
	CompletionStatus     models.CompletionStatus `json:"completion_status"`
	TimeRemainingSeconds float64                 `json:"time_remaining_seconds"`
	Urgency              lifecycle.Urgency       `json:"urgency"`
}

// Availability reports whether the assignment can be started or resumed right
// now, plus the tiered time-remaining descriptor the UI renders.
func (h *AssignmentHandler) Availability(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	now := time.Now().UTC()
	remaining := lifecycle.TimeRemaining(assignment, now)
	c.JSON(http.StatusOK, availabilityResponse{
		Available:            lifecycle.IsAvailable(assignment, now),
		CompletionStatus:     assignment.CompletionStatus,
		TimeRemainingSeconds: remaining.Seconds(),
		Urgency:              lifecycle.Tier(remaining),
	})
}

// Start begins or resumes the assignment and binds it to the session so
// follow-up answer/event calls are accepted for this sitting.
func (h *AssignmentHandler) Start(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canAccessAssignment(c, assignment.PublicID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this assignment"})
		return
	}

	if err := lifecycle.Start(assignment, time.Now().UTC()); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := repository.MarkStarted(assignment); err != nil {
		respondError(c, h.log, err)
		return
	}

	session := sessions.Default(c)
	session.Set(SessionAssignmentKey, assignment.PublicID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
	}

	c.JSON(http.StatusOK, assignment)
}

type answerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	RawValue   int  `json:"raw_value" binding:"required,min=1"`
}

// SubmitAnswer upserts one answer while the assignment is started. Answers
// freeze the moment the assignment completes.
func (h *AssignmentHandler) SubmitAnswer(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canAccessAssignment(c, assignment.PublicID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this assignment"})
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer payload"})
		return
	}

	now := time.Now().UTC()
	if assignment.CompletionStatus != models.StatusStarted || !lifecycle.IsAvailable(assignment, now) {
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment is not accepting answers"})
		return
	}

	if err := repository.SaveAnswer(assignment.ID, req.QuestionID, req.RawValue); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete finalizes the assignment: it runs the scoring engine and the
// activity reducer once and materializes the result snapshot. A duplicate
// submit returns the snapshot the first call wrote.
func (h *AssignmentHandler) Complete(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canAccessAssignment(c, assignment.PublicID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this assignment"})
		return
	}

	if assignment.CompletionStatus == models.StatusCompleted {
		h.respondSnapshot(c, assignment.ID)
		return
	}

	if err := lifecycle.Complete(assignment, time.Now().UTC()); err != nil {
		respondError(c, h.log, err)
		return
	}

	snapshot, err := h.buildSnapshot(assignment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := repository.MarkCompleted(assignment, snapshot); err != nil {
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			// Lost the race against a retried submit; the winner's snapshot
			// is the canonical one.
			h.respondSnapshot(c, assignment.ID)
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completion_status": assignment.CompletionStatus,
		"end_time":          assignment.EndTime,
		"breakdown":         json.RawMessage(snapshot.Breakdown),
		"analytics":         json.RawMessage(snapshot.Analytics),
	})
}

// buildSnapshot runs both engines over the assignment's stored answers and
// activity log. A malformed log does not block completion: the breakdown is
// still materialized and the analytics failure stays scoped to this
// assignment.
func (h *AssignmentHandler) buildSnapshot(assignment *models.TestAssignment) (*models.ResultSnapshot, error) {
	answers, err := repository.GetAnswersForAssignment(assignment.ID)
	if err != nil {
		return nil, err
	}
	questions, err := repository.GetQuestionsForTest(assignment.TestID)
	if err != nil {
		return nil, err
	}

	breakdown, err := scoring.Score(answers, questions)
	if err != nil {
		return nil, err
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ResultSnapshot{Breakdown: datatypes.JSON(breakdownJSON)}

	entries, err := repository.GetActivityLog(assignment.ID)
	if err != nil {
		return nil, err
	}
	analytics, err := activity.Reduce(entries)
	if err != nil {
		h.log.Warn("Activity log unusable, completing without analytics",
			zap.String("assignment", assignment.PublicID), zap.Error(err))
		return snapshot, nil
	}
	analyticsJSON, err := json.Marshal(analytics)
	if err != nil {
		return nil, err
	}
	snapshot.Analytics = datatypes.JSON(analyticsJSON)
	return snapshot, nil
}

func (h *AssignmentHandler) respondSnapshot(c *gin.Context, assignmentID uint) {
	snapshot, err := repository.GetResultSnapshot(assignmentID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completion_status": models.StatusCompleted,
		"breakdown":         json.RawMessage(snapshot.Breakdown),
		"analytics":         json.RawMessage(snapshot.Analytics),
	})
}
