package handlers

import (
	"net/http"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/config"
	"github.com/musama5293/NPI-Portal-sub003/internal/lifecycle"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"
	"github.com/musama5293/NPI-Portal-sub003/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler issues and redeems signed assignment links so candidates reach
// their test without an account.
type LinkHandler struct {
	log *zap.Logger
}

func NewLinkHandler(log *zap.Logger) *LinkHandler {
	return &LinkHandler{log: log}
}

// Issue signs a link token for an assignment. Admin only, rate-limited.
func (h *LinkHandler) Issue(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	now := time.Now().UTC()
	ttl := time.Duration(config.Conf.Assessment.LinkTTLHours) * time.Hour
	// A link should never outlive the assignment's own window.
	if remaining := lifecycle.TimeRemaining(assignment, now); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment has expired"})
		return
	}

	token, err := utils.SignAssignmentToken(config.Conf.Server.TokenSecret, assignment.PublicID, ttl, now)
	if err != nil {
		h.log.Error("Failed to sign assignment token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        config.Conf.Server.BaseURL + "/t/" + token,
		"expires_at": now.Add(ttl),
	})
}

// Redeem validates a link token, checks the assignment's window and binds the
// assignment to the candidate's session.
func (h *LinkHandler) Redeem(c *gin.Context) {
	publicID, err := utils.ParseAssignmentToken(config.Conf.Server.TokenSecret, c.Param("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired link"})
		return
	}

	assignment, err := repository.GetAssignmentByPublicID(publicID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	now := time.Now().UTC()
	if !lifecycle.IsAvailable(assignment, now) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Assignment is not currently available"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionAssignmentKey, assignment.PublicID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open sitting"})
		return
	}

	remaining := lifecycle.TimeRemaining(assignment, now)
	c.JSON(http.StatusOK, gin.H{
		"assignment":             assignment,
		"available":              true,
		"time_remaining_seconds": remaining.Seconds(),
		"urgency":                lifecycle.Tier(remaining),
	})
}
