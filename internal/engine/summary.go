package engine

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/propline/prop-engine/internal/models"
)

// Summarize aggregates a team's projection slate: totals plus the mean
// and standard deviation of projected yards across players.
func Summarize(projections models.TeamProjections) models.SlateSummary {
	if len(projections) == 0 {
		return models.SlateSummary{}
	}

	yards := make([]float64, 0, len(projections))
	tds := make([]float64, 0, len(projections))
	for _, p := range projections {
		yards = append(yards, p.MeanYards)
		tds = append(tds, p.MeanTDs)
	}

	summary := models.SlateSummary{
		Players:        len(projections),
		TotalMeanYards: floats.Sum(yards),
		TotalMeanTDs:   floats.Sum(tds),
		AvgMeanYards:   stat.Mean(yards, nil),
	}
	if len(yards) > 1 {
		summary.StdMeanYards = stat.StdDev(yards, nil)
	}
	return summary
}
