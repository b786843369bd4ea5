package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propline/prop-engine/internal/models"
)

func TestSummarize(t *testing.T) {
	projections := models.TeamProjections{
		"A": {MeanYards: 100.0, MeanTDs: 0.4},
		"B": {MeanYards: 60.0, MeanTDs: 0.3},
		"C": {MeanYards: 20.0, MeanTDs: 0.3},
	}

	summary := Summarize(projections)

	assert.Equal(t, 3, summary.Players)
	assert.InDelta(t, 180.0, summary.TotalMeanYards, 1e-9)
	assert.InDelta(t, 1.0, summary.TotalMeanTDs, 1e-9)
	assert.InDelta(t, 60.0, summary.AvgMeanYards, 1e-9)
	assert.InDelta(t, 40.0, summary.StdMeanYards, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(models.TeamProjections{})
	assert.Zero(t, summary.Players)
	assert.Zero(t, summary.TotalMeanYards)
}

func TestSummarize_SinglePlayerNoStdDev(t *testing.T) {
	summary := Summarize(models.TeamProjections{
		"Only": {MeanYards: 88.0},
	})
	assert.Equal(t, 1, summary.Players)
	assert.Zero(t, summary.StdMeanYards)
}
