package handlers

import (
	"errors"
	"net/http"

	"github.com/musama5293/NPI-Portal-sub003/internal/activity"
	"github.com/musama5293/NPI-Portal-sub003/internal/lifecycle"
	"github.com/musama5293/NPI-Portal-sub003/internal/scoring"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionAssignmentKey holds the public ID of the assignment the current
// sitting is working on. Set when a link is redeemed or a test is started.
const SessionAssignmentKey = "assignmentID"

// respondError maps engine errors onto HTTP statuses. Every failure is scoped
// to the one assignment being processed; nothing here aborts anything else.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, activity.ErrMalformedLog),
		errors.Is(err, activity.ErrUnknownActivityType),
		errors.Is(err, scoring.ErrInvalidQuestionScale),
		errors.Is(err, scoring.ErrUnknownQuestion):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to compute detailed results for this assignment"})
	default:
		log.Error("Unhandled assignment error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// canAccessAssignment allows an admin, or the sitting whose session was bound
// to this assignment via a redeemed link or an explicit start.
func canAccessAssignment(c *gin.Context, publicID string) bool {
	if _, isAdmin := c.Get("user"); isAdmin {
		return true
	}
	session := sessions.Default(c)
	bound, ok := session.Get(SessionAssignmentKey).(string)
	return ok && bound == publicID
}
