package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propline/prop-engine/internal/models"
)

func TestApplyWeatherFactor_WindBoundary(t *testing.T) {
	below := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 14}, true)
	at := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 15}, true)

	assert.Equal(t, 100.0, below, "no wind penalty under 15 mph")
	assert.InDelta(t, 93.0, at, 1e-9, "7% penalty at 15 mph")
}

func TestApplyWeatherFactor_PrecipOnly(t *testing.T) {
	got := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 0, Precip: true}, true)
	assert.InDelta(t, 95.0, got, 1e-9)
}

func TestApplyWeatherFactor_PenaltiesSubtractNotMultiply(t *testing.T) {
	got := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 20, Precip: true}, true)
	// 1 - 0.07 - 0.05, not 0.93 * 0.95
	assert.InDelta(t, 88.0, got, 1e-9)
}

func TestApplyWeatherFactor_GroundGameBump(t *testing.T) {
	wind := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 18}, false)
	precip := ApplyWeatherFactor(100.0, models.GameWeather{Precip: true}, false)
	both := ApplyWeatherFactor(100.0, models.GameWeather{WindMPH: 18, Precip: true}, false)
	calm := ApplyWeatherFactor(100.0, models.GameWeather{}, false)

	assert.InDelta(t, 103.0, wind, 1e-9)
	assert.InDelta(t, 103.0, precip, 1e-9)
	assert.InDelta(t, 103.0, both, 1e-9, "bump applies once, not per condition")
	assert.Equal(t, 100.0, calm)
}

func TestApplyWeatherFactor_NonNegative(t *testing.T) {
	got := ApplyWeatherFactor(0.0, models.GameWeather{WindMPH: 30, Precip: true}, true)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestApplyRivalryFactor(t *testing.T) {
	assert.InDelta(t, 96.0, ApplyRivalryFactor(100.0, true), 1e-9)
	assert.Equal(t, 100.0, ApplyRivalryFactor(100.0, false))
}
