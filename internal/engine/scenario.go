package engine

import "github.com/propline/prop-engine/internal/models"

// Scenario names used as keys in the probability map.
const (
	ScenarioNormal     = "normal"
	ScenarioWR1Bracket = "wr1_bracket"
	ScenarioRBErased   = "rb_erased"
	ScenarioOLCollapse = "ol_collapse"
)

// ScenarioProbs derives game-script scenario probabilities from matchup
// feature flags. The values are independent shrinkage triggers, not a
// distribution, so they do not sum to 1.
func ScenarioProbs(m models.MatchupMetrics) map[string]float64 {
	probs := map[string]float64{
		ScenarioNormal:     0.5,
		ScenarioWR1Bracket: 0.1,
		ScenarioRBErased:   0.1,
		ScenarioOLCollapse: 0.05,
	}
	if m.WR1VsEliteCB {
		probs[ScenarioWR1Bracket] = 0.2
	}
	if m.EliteRunD {
		probs[ScenarioRBErased] = 0.2
	}
	if m.PassRushEdge {
		probs[ScenarioOLCollapse] = 0.1
	}
	return probs
}
