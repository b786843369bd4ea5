package models

// Position identifies a depth chart position group.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// NewsFlag represents a beat-writer/news arrow attached to a player.
type NewsFlag string

const (
	NewsFlagUp   NewsFlag = "arrow_up"
	NewsFlagDown NewsFlag = "arrow_down"
	NewsFlagNone NewsFlag = ""
)

// DepthChart maps a position group to its ranked player names.
type DepthChart map[Position][]string

// StarterLineup is a user-declared set of starters for one team.
// Non-primary slots (RB2, WR3, TE2) are optional; nil means "fill from
// the depth chart" under the lenient resolution policy.
type StarterLineup struct {
	QB  string  `json:"qb"`
	RB1 string  `json:"rb1"`
	RB2 *string `json:"rb2,omitempty"`
	WR1 string  `json:"wr1"`
	WR2 string  `json:"wr2"`
	WR3 *string `json:"wr3,omitempty"`
	TE1 string  `json:"te1"`
	TE2 *string `json:"te2,omitempty"`
}

// RoleUsage is the raw trailing-window usage record for one player,
// fetched fresh from the data provider on every orchestration call.
type RoleUsage struct {
	SnapPct float64 `json:"snap_pct"`
	RushAtt int     `json:"rush_att"`
	Targets int     `json:"targets"`
	RZRush  int     `json:"rz_rush"`
	RZTgt   int     `json:"rz_tgt"`
}

// PlayerUsage holds derived per-player usage shares. Rush and target
// shares sum to 1.0 across the team after renormalization.
type PlayerUsage struct {
	SnapShare     float64 `json:"snap_share"`
	RushShare     float64 `json:"rush_share"`
	TargetShare   float64 `json:"target_share"`
	RZRushShare   float64 `json:"rz_rush_share"`
	RZTargetShare float64 `json:"rz_target_share"`
}

// MatchupMetrics carries team-level matchup projections and defensive
// feature flags for one game. Unrecognized upstream signals are dropped
// at the provider boundary; anything missing defaults to zero/false.
type MatchupMetrics struct {
	TeamPassYardsProj float64 `json:"team_pass_yards_proj"`
	TeamRushYardsProj float64 `json:"team_rush_yards_proj"`
	EliteRunD         bool    `json:"elite_run_d"`
	WR1VsEliteCB      bool    `json:"wr1_vs_elite_cb"`
	PassRushEdge      bool    `json:"pass_rush_edge"`
	IsDivisional      bool    `json:"is_divisional"`
}

// GameWeather is the forecast snapshot used by the environment adjusters.
type GameWeather struct {
	WindMPH int  `json:"wind_mph"`
	Precip  bool `json:"precip"`
}

// PlayerFlags marks the role-specific scenario triggers for one starter
// slot. Only the WR1 slot carries IsWR1 and only the RB1 slot carries
// IsRB1.
type PlayerFlags struct {
	IsWR1 bool
	IsRB1 bool
}

// PlayerProjection is the engine output for one player. Reception fields
// are nil for players with zero target share. Floors are fixed-ratio
// discounts of the mean, never independently computed.
type PlayerProjection struct {
	MeanYards       float64  `json:"mean_yards"`
	FloorYards      float64  `json:"floor_yards"`
	MeanReceptions  *float64 `json:"mean_receptions,omitempty"`
	FloorReceptions *float64 `json:"floor_receptions,omitempty"`
	MeanTDs         float64  `json:"mean_tds"`
	FloorTDs        float64  `json:"floor_tds"`
}

// TeamProjections is the per-team orchestration result, keyed by
// resolved player name.
type TeamProjections map[string]PlayerProjection

// SlateSummary aggregates a team's projected slate for the API layer.
type SlateSummary struct {
	Players        int     `json:"players"`
	TotalMeanYards float64 `json:"total_mean_yards"`
	TotalMeanTDs   float64 `json:"total_mean_tds"`
	AvgMeanYards   float64 `json:"avg_mean_yards"`
	StdMeanYards   float64 `json:"std_mean_yards"`
}
