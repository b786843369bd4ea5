package providers

import (
	"context"
	"fmt"

	"github.com/propline/prop-engine/internal/models"
)

// StubProvider serves built-in demo data for a single matchup so the
// service always runs without credentials. It satisfies engine.DataSource.
type StubProvider struct{}

// NewStubProvider creates the offline demo data source.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

var stubDepthCharts = map[string]models.DepthChart{
	"Cowboys": {
		models.PositionQB: {"Dak Prescott", "Cooper Rush"},
		models.PositionRB: {"Javonte Williams", "Rico Dowdle"},
		models.PositionWR: {"CeeDee Lamb", "George Pickens", "Jalen Tolbert"},
		models.PositionTE: {"Jake Ferguson", "Luke Schoonmaker"},
	},
	"Lions": {
		models.PositionQB: {"Jared Goff", "Hendon Hooker"},
		models.PositionRB: {"Jahmyr Gibbs", "David Montgomery"},
		models.PositionWR: {"Amon-Ra St. Brown", "Jameson Williams", "Kalif Raymond"},
		models.PositionTE: {"Sam LaPorta", "Brock Wright"},
	},
}

var stubUsage = map[string]map[string]models.RoleUsage{
	"Cowboys": {
		"Dak Prescott":     {SnapPct: 1.00, RushAtt: 12, Targets: 0, RZRush: 3, RZTgt: 0},
		"Javonte Williams": {SnapPct: 0.62, RushAtt: 58, Targets: 11, RZRush: 9, RZTgt: 2},
		"Rico Dowdle":      {SnapPct: 0.38, RushAtt: 31, Targets: 8, RZRush: 4, RZTgt: 1},
		"CeeDee Lamb":      {SnapPct: 0.94, RushAtt: 2, Targets: 41, RZRush: 0, RZTgt: 7},
		"George Pickens":   {SnapPct: 0.88, RushAtt: 0, Targets: 29, RZRush: 0, RZTgt: 4},
		"Jalen Tolbert":    {SnapPct: 0.64, RushAtt: 0, Targets: 14, RZRush: 0, RZTgt: 1},
		"Jake Ferguson":    {SnapPct: 0.78, RushAtt: 0, Targets: 19, RZRush: 0, RZTgt: 3},
	},
	"Lions": {
		"Jared Goff":        {SnapPct: 1.00, RushAtt: 4, Targets: 0, RZRush: 1, RZTgt: 0},
		"Jahmyr Gibbs":      {SnapPct: 0.58, RushAtt: 51, Targets: 16, RZRush: 7, RZTgt: 3},
		"David Montgomery":  {SnapPct: 0.42, RushAtt: 40, Targets: 4, RZRush: 8, RZTgt: 0},
		"Amon-Ra St. Brown": {SnapPct: 0.95, RushAtt: 1, Targets: 38, RZRush: 0, RZTgt: 6},
		"Jameson Williams":  {SnapPct: 0.82, RushAtt: 3, Targets: 22, RZRush: 1, RZTgt: 2},
		"Kalif Raymond":     {SnapPct: 0.41, RushAtt: 0, Targets: 9, RZRush: 0, RZTgt: 0},
		"Sam LaPorta":       {SnapPct: 0.84, RushAtt: 0, Targets: 24, RZRush: 0, RZTgt: 5},
	},
}

var stubNewsFlags = map[string]map[string]models.NewsFlag{
	"Cowboys": {
		"CeeDee Lamb": models.NewsFlagUp,
		"Rico Dowdle": models.NewsFlagDown,
	},
	"Lions": {
		"Sam LaPorta": models.NewsFlagUp,
	},
}

var stubMatchups = map[string]models.MatchupMetrics{
	"Cowboys": {
		TeamPassYardsProj: 252.0,
		TeamRushYardsProj: 104.0,
		EliteRunD:         true,
		WR1VsEliteCB:      false,
		PassRushEdge:      true,
		IsDivisional:      false,
	},
	"Lions": {
		TeamPassYardsProj: 261.0,
		TeamRushYardsProj: 128.0,
		EliteRunD:         false,
		WR1VsEliteCB:      true,
		PassRushEdge:      false,
		IsDivisional:      false,
	},
}

// Ford Field is a dome; both demo teams get calm conditions.
var stubWeather = map[string]models.GameWeather{
	"Cowboys": {WindMPH: 0, Precip: false},
	"Lions":   {WindMPH: 0, Precip: false},
}

func (s *StubProvider) DepthChart(_ context.Context, team string, _ int) (models.DepthChart, error) {
	chart, ok := stubDepthCharts[team]
	if !ok {
		return nil, fmt.Errorf("no demo depth chart for team %q", team)
	}
	return chart, nil
}

func (s *StubProvider) RecentUsage(_ context.Context, team string, _ int) (map[string]models.RoleUsage, error) {
	usage, ok := stubUsage[team]
	if !ok {
		return nil, fmt.Errorf("no demo usage data for team %q", team)
	}
	return usage, nil
}

func (s *StubProvider) NewsFlags(_ context.Context, team string, _ int) (map[string]models.NewsFlag, error) {
	flags, ok := stubNewsFlags[team]
	if !ok {
		return map[string]models.NewsFlag{}, nil
	}
	return flags, nil
}

func (s *StubProvider) MatchupMetrics(_ context.Context, team string, _ int) (models.MatchupMetrics, error) {
	matchup, ok := stubMatchups[team]
	if !ok {
		return models.MatchupMetrics{}, fmt.Errorf("no demo matchup metrics for team %q", team)
	}
	return matchup, nil
}

func (s *StubProvider) Weather(_ context.Context, team string, _ int) (models.GameWeather, error) {
	weather, ok := stubWeather[team]
	if !ok {
		return models.GameWeather{}, fmt.Errorf("no demo weather for team %q", team)
	}
	return weather, nil
}
