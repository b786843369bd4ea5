package engine

import (
	"math"

	"github.com/propline/prop-engine/internal/models"
)

// Environment adjustment constants.
const (
	windPenaltyThresholdMPH = 15
	windPassPenalty         = 0.07
	precipPassPenalty       = 0.05
	badWeatherRushBump      = 1.03
	rivalryFactor           = 0.96
)

// ApplyWeatherFactor scales a stat for the game forecast. Passing stats
// lose 7% at sustained wind of 15+ mph and a further 5% in precipitation
// (penalties subtract from a single factor before it is applied). Ground
// stats get a 3% bump in either condition instead. The result never goes
// negative.
func ApplyWeatherFactor(stat float64, weather models.GameWeather, isPassStat bool) float64 {
	factor := 1.0
	if isPassStat {
		if weather.WindMPH >= windPenaltyThresholdMPH {
			factor -= windPassPenalty
		}
		if weather.Precip {
			factor -= precipPassPenalty
		}
	} else if weather.WindMPH >= windPenaltyThresholdMPH || weather.Precip {
		factor *= badWeatherRushBump
	}
	return math.Max(stat*factor, 0.0)
}

// ApplyRivalryFactor discounts a stat in divisional games; familiarity
// suppresses explosive plays.
func ApplyRivalryFactor(stat float64, rivalry bool) float64 {
	if rivalry {
		return stat * rivalryFactor
	}
	return stat
}
