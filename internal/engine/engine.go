package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/propline/prop-engine/internal/models"
)

// DataSource is the sports-data collaborator contract the engine
// consumes. Implementations fetch fresh data per call; the engine never
// caches.
type DataSource interface {
	DepthChart(ctx context.Context, team string, week int) (models.DepthChart, error)
	RecentUsage(ctx context.Context, team string, week int) (map[string]models.RoleUsage, error)
	NewsFlags(ctx context.Context, team string, week int) (map[string]models.NewsFlag, error)
	MatchupMetrics(ctx context.Context, team string, week int) (models.MatchupMetrics, error)
	Weather(ctx context.Context, team string, week int) (models.GameWeather, error)
}

// Options configures engine behavior that the deployment pins once.
type Options struct {
	StarterPolicy       StarterPolicy
	RenormalizeRZShares bool
	TeamPassAttempts    float64
	LeagueCatchRate     float64
}

// DefaultOptions mirrors the original model's constants.
func DefaultOptions() Options {
	return Options{
		StarterPolicy:       PolicyLenient,
		RenormalizeRZShares: false,
		TeamPassAttempts:    40.0,
		LeagueCatchRate:     0.65,
	}
}

// Engine is the projection pipeline. It is stateless across calls: every
// orchestration fetches fresh data, computes, and returns.
type Engine struct {
	src    DataSource
	opts   Options
	logger *logrus.Logger
}

// New creates a projection engine backed by the given data source.
func New(src DataSource, opts Options, logger *logrus.Logger) *Engine {
	if opts.TeamPassAttempts <= 0 {
		opts.TeamPassAttempts = DefaultOptions().TeamPassAttempts
	}
	if opts.LeagueCatchRate <= 0 {
		opts.LeagueCatchRate = DefaultOptions().LeagueCatchRate
	}
	if opts.StarterPolicy == "" {
		opts.StarterPolicy = PolicyLenient
	}
	return &Engine{src: src, opts: opts, logger: logger}
}

// starterSlot drives the per-slot projection loop.
type starterSlot struct {
	name       string
	position   models.Position
	flags      models.PlayerFlags
	isPassStat bool
}

// RB yardage blends rushing volume with a discounted receiving component;
// QB yardage adds a scramble component on top of the team passing total.
const (
	qbRushComponent     = 0.15
	rbReceivingDiscount = 0.25
)

// BuildTeamProjections runs the full pipeline for one team: resolve
// starters, derive usage, fetch the game environment, and project each
// starter. The result is keyed by resolved player name; slots whose
// resolved name has no usage record are omitted.
func (e *Engine) BuildTeamProjections(ctx context.Context, team, opponent string, week int, lineup models.StarterLineup) (models.TeamProjections, error) {
	if week <= 0 {
		return nil, &ValidationError{Reason: "week must be positive"}
	}

	log := e.logger.WithFields(logrus.Fields{
		"component": "engine",
		"team":      team,
		"opponent":  opponent,
		"week":      week,
	})

	depth, err := e.src.DepthChart(ctx, team, week)
	if err != nil {
		return nil, &UpstreamDataError{Source: "depth_chart", Err: err}
	}

	starters, err := e.ResolveStarters(depth, lineup)
	if err != nil {
		return nil, err
	}

	records, err := e.src.RecentUsage(ctx, team, week)
	if err != nil {
		return nil, &UpstreamDataError{Source: "recent_usage", Err: err}
	}
	flags, err := e.src.NewsFlags(ctx, team, week)
	if err != nil {
		return nil, &UpstreamDataError{Source: "news_flags", Err: err}
	}

	usage, err := DeriveUsage(records, flags, e.opts.RenormalizeRZShares)
	if err != nil {
		return nil, err
	}

	matchup, err := e.src.MatchupMetrics(ctx, team, week)
	if err != nil {
		return nil, &UpstreamDataError{Source: "matchup_metrics", Err: err}
	}
	weather, err := e.src.Weather(ctx, team, week)
	if err != nil {
		return nil, &UpstreamDataError{Source: "weather", Err: err}
	}

	passYards := matchup.TeamPassYardsProj
	rushYards := matchup.TeamRushYardsProj

	projections := make(models.TeamProjections)
	for _, slot := range starterSlots(starters) {
		u, ok := usage[slot.name]
		if !ok {
			// No trailing usage for the resolved name; skip the slot
			// rather than emitting a null projection.
			log.WithField("player", slot.name).Debug("No usage record for resolved starter, omitting")
			continue
		}

		var base float64
		switch slot.position {
		case models.PositionQB:
			base = passYards + qbRushComponent*rushYards
		case models.PositionRB:
			base = rushYards*u.RushShare + rbReceivingDiscount*passYards*u.TargetShare
		default:
			base = passYards * u.TargetShare
		}

		projections[slot.name] = e.ProjectPlayer(base, u, slot.flags, matchup, weather, slot.isPassStat)
	}

	log.WithField("players", len(projections)).Info("Team projections built")
	return projections, nil
}

// starterSlots flattens a resolved lineup into the ordered projection
// slots. Scenario flags attach to the WR1 and RB1 slots only.
func starterSlots(s models.StarterLineup) []starterSlot {
	slots := []starterSlot{
		{name: s.QB, position: models.PositionQB, isPassStat: true},
		{name: s.RB1, position: models.PositionRB, flags: models.PlayerFlags{IsRB1: true}},
		{name: s.WR1, position: models.PositionWR, flags: models.PlayerFlags{IsWR1: true}, isPassStat: true},
		{name: s.WR2, position: models.PositionWR, isPassStat: true},
		{name: s.TE1, position: models.PositionTE, isPassStat: true},
	}
	if s.RB2 != nil {
		slots = append(slots, starterSlot{name: *s.RB2, position: models.PositionRB})
	}
	if s.WR3 != nil {
		slots = append(slots, starterSlot{name: *s.WR3, position: models.PositionWR, isPassStat: true})
	}
	if s.TE2 != nil {
		slots = append(slots, starterSlot{name: *s.TE2, position: models.PositionTE, isPassStat: true})
	}
	return slots
}

// TeamResult pairs one team's projections with the error that aborted
// them, for game-level calls.
type TeamResult struct {
	Team        string
	Projections models.TeamProjections
	Err         error
}

// ProjectGame projects both teams of a matchup. Failures are isolated
// per team: an upstream error for one side still returns the other
// side's projections.
func (e *Engine) ProjectGame(ctx context.Context, home, away string, week int, homeLineup, awayLineup models.StarterLineup) (TeamResult, TeamResult) {
	homeProj, homeErr := e.BuildTeamProjections(ctx, home, away, week, homeLineup)
	awayProj, awayErr := e.BuildTeamProjections(ctx, away, home, week, awayLineup)

	if homeErr != nil {
		e.logger.WithError(homeErr).WithField("team", home).Warn("Home team projection failed")
	}
	if awayErr != nil {
		e.logger.WithError(awayErr).WithField("team", away).Warn("Away team projection failed")
	}

	return TeamResult{Team: home, Projections: homeProj, Err: homeErr},
		TeamResult{Team: away, Projections: awayProj, Err: awayErr}
}
