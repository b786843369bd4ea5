package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propline/prop-engine/internal/models"
)

// fakeSource is a synthetic data source for orchestrator tests.
type fakeSource struct {
	depth   map[string]models.DepthChart
	usage   map[string]map[string]models.RoleUsage
	flags   map[string]map[string]models.NewsFlag
	matchup map[string]models.MatchupMetrics
	weather map[string]models.GameWeather
	errs    map[string]error // keyed by endpoint:team
}

func (f *fakeSource) fail(endpoint, team string) error {
	if f.errs == nil {
		return nil
	}
	return f.errs[endpoint+":"+team]
}

func (f *fakeSource) DepthChart(_ context.Context, team string, _ int) (models.DepthChart, error) {
	if err := f.fail("depth_chart", team); err != nil {
		return nil, err
	}
	return f.depth[team], nil
}

func (f *fakeSource) RecentUsage(_ context.Context, team string, _ int) (map[string]models.RoleUsage, error) {
	if err := f.fail("recent_usage", team); err != nil {
		return nil, err
	}
	return f.usage[team], nil
}

func (f *fakeSource) NewsFlags(_ context.Context, team string, _ int) (map[string]models.NewsFlag, error) {
	if err := f.fail("news_flags", team); err != nil {
		return nil, err
	}
	return f.flags[team], nil
}

func (f *fakeSource) MatchupMetrics(_ context.Context, team string, _ int) (models.MatchupMetrics, error) {
	if err := f.fail("matchup_metrics", team); err != nil {
		return models.MatchupMetrics{}, err
	}
	return f.matchup[team], nil
}

func (f *fakeSource) Weather(_ context.Context, team string, _ int) (models.GameWeather, error) {
	if err := f.fail("weather", team); err != nil {
		return models.GameWeather{}, err
	}
	return f.weather[team], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		depth: map[string]models.DepthChart{
			"Sharks": {
				models.PositionQB: {"Passer", "Backup QB"},
				models.PositionRB: {"Lead Back", "Change Back"},
				models.PositionWR: {"Alpha", "Beta", "Gamma"},
				models.PositionTE: {"Tight One", "Tight Two"},
			},
		},
		usage: map[string]map[string]models.RoleUsage{
			"Sharks": {
				"Passer":    {SnapPct: 1.0, RushAtt: 10},
				"Lead Back": {SnapPct: 0.6, RushAtt: 60, Targets: 10, RZRush: 8},
				"Alpha":     {SnapPct: 0.9, Targets: 40, RZTgt: 6},
				"Beta":      {SnapPct: 0.8, Targets: 30, RZTgt: 2},
				"Tight One": {SnapPct: 0.7, Targets: 20, RZTgt: 2},
			},
		},
		flags: map[string]map[string]models.NewsFlag{},
		matchup: map[string]models.MatchupMetrics{
			"Sharks": {TeamPassYardsProj: 250.0, TeamRushYardsProj: 100.0},
		},
		weather: map[string]models.GameWeather{
			"Sharks": {},
		},
	}
}

func fakeLineup() models.StarterLineup {
	return models.StarterLineup{
		QB:  "Passer",
		RB1: "Lead Back",
		WR1: "Alpha",
		WR2: "Beta",
		TE1: "Tight One",
	}
}

func newTestEngine(src DataSource) *Engine {
	e := testEngine(DefaultOptions())
	e.src = src
	return e
}

func TestBuildTeamProjections_HappyPath(t *testing.T) {
	e := newTestEngine(newFakeSource())

	projections, err := e.BuildTeamProjections(context.Background(), "Sharks", "Jets", 5, fakeLineup())
	require.NoError(t, err)

	// Lenient policy fills RB2/WR3/TE2 from the chart; Change Back,
	// Gamma, and Tight Two have no usage records and are omitted.
	require.Len(t, projections, 5)
	for _, name := range []string{"Passer", "Lead Back", "Alpha", "Beta", "Tight One"} {
		assert.Contains(t, projections, name)
	}

	// QB base: pass + 0.15 * rush, calm weather, no rivalry.
	qb := projections["Passer"]
	assert.InDelta(t, 250.0+0.15*100.0, qb.MeanYards, 1e-9)

	// WR2 base: pass * target_share (40% of 100 targets).
	beta := projections["Beta"]
	assert.InDelta(t, 250.0*0.30, beta.MeanYards, 1e-9)
	require.NotNil(t, beta.MeanReceptions)

	// RB1 base: rush * rush_share + 0.25 * pass * target_share, with the
	// rb_erased baseline shrinkage (0.1 when no elite run defense).
	lead := projections["Lead Back"]
	base := 100.0*(60.0/70.0) + 0.25*250.0*0.10
	assert.InDelta(t, base*(1-0.15*0.1), lead.MeanYards, 1e-9)
	assert.Nil(t, projections["Passer"].MeanReceptions)
}

func TestBuildTeamProjections_WR1GetsBracketShrinkage(t *testing.T) {
	src := newFakeSource()
	m := src.matchup["Sharks"]
	m.WR1VsEliteCB = true
	src.matchup["Sharks"] = m

	e := newTestEngine(src)

	projections, err := e.BuildTeamProjections(context.Background(), "Sharks", "Jets", 5, fakeLineup())
	require.NoError(t, err)

	alpha := projections["Alpha"]
	beta := projections["Beta"]

	// Alpha is the WR1 slot: bracket probability 0.2 shrinks it; Beta is
	// untouched by the scenario.
	assert.InDelta(t, 250.0*0.40*(1-0.15*0.2), alpha.MeanYards, 1e-9)
	assert.InDelta(t, 250.0*0.30, beta.MeanYards, 1e-9)
}

func TestBuildTeamProjections_OmitsSlotsWithoutUsage(t *testing.T) {
	src := newFakeSource()
	delete(src.usage["Sharks"], "Beta")

	e := newTestEngine(src)

	projections, err := e.BuildTeamProjections(context.Background(), "Sharks", "Jets", 5, fakeLineup())
	require.NoError(t, err)
	assert.NotContains(t, projections, "Beta")
}

func TestBuildTeamProjections_InvalidWeek(t *testing.T) {
	e := newTestEngine(newFakeSource())

	_, err := e.BuildTeamProjections(context.Background(), "Sharks", "Jets", 0, fakeLineup())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestBuildTeamProjections_UpstreamErrorWrapped(t *testing.T) {
	src := newFakeSource()
	boom := errors.New("socket timeout")
	src.errs = map[string]error{"weather:Sharks": boom}

	e := newTestEngine(src)

	_, err := e.BuildTeamProjections(context.Background(), "Sharks", "Jets", 5, fakeLineup())
	require.Error(t, err)

	var upstreamErr *UpstreamDataError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "weather", upstreamErr.Source)
	assert.ErrorIs(t, err, boom)
}

func TestProjectGame_IsolatesTeamFailures(t *testing.T) {
	src := newFakeSource()
	src.errs = map[string]error{"depth_chart:Jets": errors.New("upstream 500")}

	e := newTestEngine(src)

	home, away := e.ProjectGame(context.Background(), "Sharks", "Jets", 5, fakeLineup(), fakeLineup())

	require.NoError(t, home.Err)
	assert.NotEmpty(t, home.Projections)

	require.Error(t, away.Err)
	var upstreamErr *UpstreamDataError
	assert.ErrorAs(t, away.Err, &upstreamErr)
	assert.Empty(t, away.Projections)
}
