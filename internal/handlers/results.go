// results.go serves the score breakdown and the dashboard charts built from
// it.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"
	"github.com/musama5293/NPI-Portal-sub003/internal/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ResultsHandler struct {
	log *zap.Logger
}

func NewResultsHandler(log *zap.Logger) *ResultsHandler {
	return &ResultsHandler{log: log}
}

// Results returns the assignment's score breakdown: the materialized
// snapshot for completed assignments, or a fresh on-demand computation for
// ones still in progress.
func (h *ResultsHandler) Results(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if assignment.CompletionStatus == models.StatusCompleted {
		snapshot, err := repository.GetResultSnapshot(assignment.ID)
		if err == nil {
			c.JSON(http.StatusOK, json.RawMessage(snapshot.Breakdown))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, h.log, err)
			return
		}
		// Snapshot missing (legacy row); fall through and recompute.
	}

	breakdown, err := h.computeBreakdown(assignment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *ResultsHandler) computeBreakdown(assignment *models.TestAssignment) (*models.ScoreBreakdown, error) {
	answers, err := repository.GetAnswersForAssignment(assignment.ID)
	if err != nil {
		return nil, err
	}
	questions, err := repository.GetQuestionsForTest(assignment.TestID)
	if err != nil {
		return nil, err
	}
	return scoring.Score(answers, questions)
}

// DomainChart renders the assignment's domain scores as a bar chart page.
func (h *ResultsHandler) DomainChart(c *gin.Context) {
	assignment, err := repository.GetAssignmentByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	breakdown, err := h.computeBreakdown(assignment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	names := make([]string, 0, len(breakdown.DomainScores))
	for name := range breakdown.DomainScores {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		items = append(items, opts.BarData{Value: breakdown.DomainScores[name]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Domain Scores",
			Subtitle: "Percentage per assessed domain",
		}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("Score", items)

	if err := bar.Render(c.Writer); err != nil {
		h.log.Error("Failed to render domain chart", zap.Error(err))
	}
}

// TimelineChart renders a candidate's score history for one key ('overall'
// or a domain name) as a line chart page.
func (h *ResultsHandler) TimelineChart(c *gin.Context) {
	candidateID, err := strconv.ParseUint(c.Query("candidate"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate"})
		return
	}
	scoreKey := c.Query("key")
	if scoreKey == "" {
		scoreKey = "overall"
	}

	data, err := repository.GetScoreTimeline(c, uint(candidateID), scoreKey)
	if err != nil {
		h.log.Error("Failed to get score timeline", zap.Error(err),
			zap.Uint64("candidateID", candidateID), zap.String("key", scoreKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Score Over Time",
			Subtitle: scoreKey,
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(data))
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}
	line.AddSeries(scoreKey, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))

	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render timeline chart", zap.Error(err))
	}
}
