package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propline/prop-engine/internal/models"
)

func TestScenarioProbs_Baseline(t *testing.T) {
	probs := ScenarioProbs(models.MatchupMetrics{})

	assert.Equal(t, 0.5, probs[ScenarioNormal])
	assert.Equal(t, 0.1, probs[ScenarioWR1Bracket])
	assert.Equal(t, 0.1, probs[ScenarioRBErased])
	assert.Equal(t, 0.05, probs[ScenarioOLCollapse])
}

func TestScenarioProbs_FlagsRaiseProbabilities(t *testing.T) {
	probs := ScenarioProbs(models.MatchupMetrics{
		WR1VsEliteCB: true,
		EliteRunD:    true,
		PassRushEdge: true,
	})

	assert.Equal(t, 0.2, probs[ScenarioWR1Bracket])
	assert.Equal(t, 0.2, probs[ScenarioRBErased])
	assert.Equal(t, 0.1, probs[ScenarioOLCollapse])
}
