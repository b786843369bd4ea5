package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/propline/prop-engine/internal/engine"
	"github.com/propline/prop-engine/internal/models"
)

// ProjectionHandler serves the projection endpoints.
type ProjectionHandler struct {
	engine *engine.Engine
	logger *logrus.Logger
}

// NewProjectionHandler creates a projection handler.
func NewProjectionHandler(eng *engine.Engine, logger *logrus.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		engine: eng,
		logger: logger,
	}
}

// TeamProjectionRequest is the body for a single-team projection.
type TeamProjectionRequest struct {
	Team     string               `json:"team" binding:"required"`
	Opponent string               `json:"opponent" binding:"required"`
	Week     int                  `json:"week" binding:"required"`
	Lineup   models.StarterLineup `json:"lineup" binding:"required"`
}

// GameProjectionRequest is the body for a full-game projection.
type GameProjectionRequest struct {
	HomeTeam   string               `json:"home_team" binding:"required"`
	AwayTeam   string               `json:"away_team" binding:"required"`
	Week       int                  `json:"week" binding:"required"`
	HomeLineup models.StarterLineup `json:"home_lineup" binding:"required"`
	AwayLineup models.StarterLineup `json:"away_lineup" binding:"required"`
}

// TeamProjectionResponse carries one team's projections plus slate
// aggregates.
type TeamProjectionResponse struct {
	RequestID   string                 `json:"request_id"`
	Team        string                 `json:"team"`
	Opponent    string                 `json:"opponent"`
	Week        int                    `json:"week"`
	Projections models.TeamProjections `json:"projections"`
	Summary     models.SlateSummary    `json:"summary"`
}

// GameTeamResult is one side of a game projection; Error is set when
// that team's orchestration failed.
type GameTeamResult struct {
	Team        string                 `json:"team"`
	Projections models.TeamProjections `json:"projections,omitempty"`
	Summary     *models.SlateSummary   `json:"summary,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// GameProjectionResponse carries both teams with per-team error
// isolation.
type GameProjectionResponse struct {
	RequestID string         `json:"request_id"`
	Week      int            `json:"week"`
	Home      GameTeamResult `json:"home"`
	Away      GameTeamResult `json:"away"`
}

// ProjectTeam handles POST /api/v1/projections/team.
func (h *ProjectionHandler) ProjectTeam(c *gin.Context) {
	var req TeamProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	requestID := uuid.New().String()
	log := h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"team":       req.Team,
		"week":       req.Week,
	})

	projections, err := h.engine.BuildTeamProjections(c.Request.Context(), req.Team, req.Opponent, req.Week, req.Lineup)
	if err != nil {
		log.WithError(err).Warn("Team projection failed")
		c.JSON(statusForError(err), gin.H{"request_id": requestID, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TeamProjectionResponse{
		RequestID:   requestID,
		Team:        req.Team,
		Opponent:    req.Opponent,
		Week:        req.Week,
		Projections: projections,
		Summary:     engine.Summarize(projections),
	})
}

// ProjectGame handles POST /api/v1/projections/game. One team failing
// upstream does not abort the other side's projections.
func (h *ProjectionHandler) ProjectGame(c *gin.Context) {
	var req GameProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	requestID := uuid.New().String()
	home, away := h.engine.ProjectGame(c.Request.Context(), req.HomeTeam, req.AwayTeam, req.Week, req.HomeLineup, req.AwayLineup)

	resp := GameProjectionResponse{
		RequestID: requestID,
		Week:      req.Week,
		Home:      toGameTeamResult(home),
		Away:      toGameTeamResult(away),
	}

	status := http.StatusOK
	if home.Err != nil && away.Err != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// ExportTeamCSV handles POST /api/v1/projections/team/export. It returns
// the projection table as CSV, sorted by projected yards descending.
func (h *ProjectionHandler) ExportTeamCSV(c *gin.Context) {
	var req TeamProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	projections, err := h.engine.BuildTeamProjections(c.Request.Context(), req.Team, req.Opponent, req.Week, req.Lineup)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="projections_`+req.Team+`_wk`+strconv.Itoa(req.Week)+`.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"player", "mean_yards", "floor_yards", "mean_receptions", "floor_receptions", "mean_tds", "floor_tds"})
	for _, name := range sortedByYards(projections) {
		p := projections[name]
		_ = w.Write([]string{
			name,
			formatFloat(p.MeanYards),
			formatFloat(p.FloorYards),
			formatOptFloat(p.MeanReceptions),
			formatOptFloat(p.FloorReceptions),
			formatFloat(p.MeanTDs),
			formatFloat(p.FloorTDs),
		})
	}
	w.Flush()
}

func toGameTeamResult(r engine.TeamResult) GameTeamResult {
	result := GameTeamResult{Team: r.Team}
	if r.Err != nil {
		result.Error = r.Err.Error()
		return result
	}
	result.Projections = r.Projections
	summary := engine.Summarize(r.Projections)
	result.Summary = &summary
	return result
}

// statusForError maps the engine error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var validationErr *engine.ValidationError
	var rangeErr *engine.OutOfRangeError
	var upstreamErr *engine.UpstreamDataError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &rangeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func sortedByYards(projections models.TeamProjections) []string {
	names := make([]string, 0, len(projections))
	for name := range projections {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if projections[names[i]].MeanYards != projections[names[j]].MeanYards {
			return projections[names[i]].MeanYards > projections[names[j]].MeanYards
		}
		return names[i] < names[j]
	})
	return names
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
