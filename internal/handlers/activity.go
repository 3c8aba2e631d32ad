package handlers

import (
	"net/http"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/activity"
	"github.com/musama5293/NPI-Portal-sub003/internal/lifecycle"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ActivityHandler struct {
	log *zap.Logger
}

func NewActivityHandler(log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{log: log}
}

type eventInput struct {
	ActivityType models.ActivityType `json:"activity_type" binding:"required"`
	Timestamp    float64             `json:"timestamp" binding:"required"`
	Data         datatypes.JSON      `json:"data"`
}

// IngestEvents appends a batch of client events to the assignment's activity
// log. Types outside the closed enumeration are rejected up front so a
// corrupted client never pollutes the log.
func (h *ActivityHandler) IngestEvents(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canAccessAssignment(c, assignment.PublicID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this assignment"})
		return
	}
	if assignment.CompletionStatus != models.StatusStarted ||
		!lifecycle.IsAvailable(assignment, time.Now().UTC()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment is not accepting events"})
		return
	}

	var inputs []eventInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		h.log.Error("Failed to bind activity events", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	entries := make([]models.ActivityLogEntry, 0, len(inputs))
	for _, in := range inputs {
		if _, err := activity.Classify(in.ActivityType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown activity type: " + string(in.ActivityType)})
			return
		}
		entries = append(entries, models.ActivityLogEntry{
			ActivityType: in.ActivityType,
			Timestamp:    in.Timestamp,
			Data:         in.Data,
		})
	}

	if err := repository.AppendActivity(assignment.ID, entries); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Analytics reduces the assignment's activity log on demand. The timeline
// entries come back tagged with their display classification.
func (h *ActivityHandler) Analytics(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	entries, err := repository.GetActivityLog(assignment.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	analytics, err := activity.Reduce(entries)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	timeline := make([]gin.H, 0, len(analytics.ActivityLog))
	for _, e := range analytics.ActivityLog {
		tag, err := activity.Classify(e.ActivityType)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		timeline = append(timeline, gin.H{"entry": e, "display": tag})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalDuration":        analytics.TotalDuration,
		"offscreenTime":        analytics.OffscreenTime,
		"fullscreenViolations": analytics.FullscreenViolations,
		"totalPages":           analytics.TotalPages,
		"questionTimes":        analytics.QuestionTimes,
		"timingCounts":         analytics.TimingCounts,
		"activityLog":          timeline,
	})
}
