package engine

import "github.com/propline/prop-engine/internal/models"

// Projection constants. Floors are fixed-ratio discounts of the mean
// ("triple-conservative" floors in the original model).
const (
	scenarioShrinkage = 0.15
	yardsFloorRatio   = 0.85
	recsFloorRatio    = 0.85
	tdsFloorRatio     = 0.70
	baseTDRate        = 0.3
)

// ProjectPlayer turns a pre-allocated base yardage estimate into a full
// player projection. The adjustment order matters: scenario shrinkage,
// then weather, then rivalry, each on the running value.
func (e *Engine) ProjectPlayer(
	baseYards float64,
	usage models.PlayerUsage,
	flags models.PlayerFlags,
	matchup models.MatchupMetrics,
	weather models.GameWeather,
	isPassStat bool,
) models.PlayerProjection {
	probs := ScenarioProbs(matchup)

	adj := baseYards
	if flags.IsWR1 && probs[ScenarioWR1Bracket] > 0 {
		adj *= 1 - scenarioShrinkage*probs[ScenarioWR1Bracket]
	}
	if flags.IsRB1 && probs[ScenarioRBErased] > 0 {
		adj *= 1 - scenarioShrinkage*probs[ScenarioRBErased]
	}

	adj = ApplyWeatherFactor(adj, weather, isPassStat)
	adj = ApplyRivalryFactor(adj, matchup.IsDivisional)

	proj := models.PlayerProjection{
		MeanYards:  adj,
		FloorYards: adj * yardsFloorRatio,
	}

	if usage.TargetShare > 0 {
		meanRecs := e.opts.TeamPassAttempts * usage.TargetShare * e.opts.LeagueCatchRate
		floorRecs := meanRecs * recsFloorRatio
		proj.MeanReceptions = &meanRecs
		proj.FloorReceptions = &floorRecs
	}

	// Red-zone involvement linearly scales a flat touchdown baseline. No
	// split between rushing and receiving touchdowns.
	proj.MeanTDs = baseTDRate * (1 + usage.RZRushShare + usage.RZTargetShare)
	proj.FloorTDs = proj.MeanTDs * tdsFloorRatio

	return proj
}
