package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propline/prop-engine/internal/models"
)

func testChart() models.DepthChart {
	return models.DepthChart{
		models.PositionQB: {"QB One", "QB Two"},
		models.PositionRB: {"A", "B"},
		models.PositionWR: {"WR One", "WR Two", "WR Three"},
		models.PositionTE: {"TE One", "TE Two"},
	}
}

func baseLineup() models.StarterLineup {
	return models.StarterLineup{
		QB:  "QB One",
		RB1: "A",
		WR1: "WR One",
		WR2: "WR Two",
		TE1: "TE One",
	}
}

func TestResolveStarters_LenientFillsBlankRB2(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyLenient})

	resolved, err := e.ResolveStarters(testChart(), baseLineup())
	require.NoError(t, err)

	require.NotNil(t, resolved.RB2)
	assert.Equal(t, "B", *resolved.RB2)
}

func TestResolveStarters_LenientFillsAllOptionalSlots(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyLenient})

	resolved, err := e.ResolveStarters(testChart(), baseLineup())
	require.NoError(t, err)

	require.NotNil(t, resolved.WR3)
	require.NotNil(t, resolved.TE2)
	assert.Equal(t, "WR Three", *resolved.WR3)
	assert.Equal(t, "TE Two", *resolved.TE2)
}

func TestResolveStarters_LenientReplacesUnchartedName(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyLenient})

	lineup := baseLineup()
	lineup.WR2 = "Practice Squad Guy"

	resolved, err := e.ResolveStarters(testChart(), lineup)
	require.NoError(t, err)
	assert.Equal(t, "WR Two", resolved.WR2, "falls back to the chart's 2nd-ranked receiver")
}

func TestResolveStarters_LenientOutOfRange(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyLenient})

	chart := testChart()
	chart[models.PositionRB] = []string{"A"}

	_, err := e.ResolveStarters(chart, baseLineup())
	require.Error(t, err)

	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, models.PositionRB, rangeErr.Position)
	assert.Equal(t, 1, rangeErr.Index)
	assert.Equal(t, 1, rangeErr.Have)
}

func TestResolveStarters_StrictRejectsUnchartedName(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyStrict})

	lineup := baseLineup()
	lineup.RB1 = "Ghost"

	_, err := e.ResolveStarters(testChart(), lineup)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Ghost", validationErr.Player)
	assert.Equal(t, models.PositionRB, validationErr.Position)
}

func TestResolveStarters_StrictRejectsBlankRequiredSlot(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyStrict})

	lineup := baseLineup()
	lineup.QB = ""

	_, err := e.ResolveStarters(testChart(), lineup)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.PositionQB, validationErr.Position)
	assert.Contains(t, validationErr.Error(), "missing required starter")
}

func TestResolveStarters_StrictKeepsBlankOptionalSlots(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyStrict})

	resolved, err := e.ResolveStarters(testChart(), baseLineup())
	require.NoError(t, err)

	assert.Nil(t, resolved.RB2)
	assert.Nil(t, resolved.WR3)
	assert.Nil(t, resolved.TE2)
}

func TestResolveStarters_StrictAcceptsChartedLineup(t *testing.T) {
	e := testEngine(Options{StarterPolicy: PolicyStrict})

	rb2 := "B"
	lineup := baseLineup()
	lineup.RB2 = &rb2

	resolved, err := e.ResolveStarters(testChart(), lineup)
	require.NoError(t, err)
	require.NotNil(t, resolved.RB2)
	assert.Equal(t, "B", *resolved.RB2)
}
