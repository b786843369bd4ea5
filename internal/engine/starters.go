package engine

import "github.com/propline/prop-engine/internal/models"

// StarterPolicy selects how declared starters are checked against the
// authoritative depth chart. One policy applies to every slot; mixing
// per-slot policies is deliberately not supported.
type StarterPolicy string

const (
	// PolicyStrict rejects any declared starter missing from the chart.
	PolicyStrict StarterPolicy = "strict"
	// PolicyLenient replaces missing or blank starters with the chart's
	// Nth-ranked name at that position.
	PolicyLenient StarterPolicy = "lenient"
)

// ResolveStarters validates or repairs a user-declared lineup against the
// depth chart under the configured policy. The returned lineup always has
// every originally-populated slot resolved to a charted name; optional
// slots left nil stay nil under the strict policy and are filled from
// the chart under the lenient one.
func (e *Engine) ResolveStarters(depth models.DepthChart, lineup models.StarterLineup) (models.StarterLineup, error) {
	resolve := func(pos models.Position, name string, index int) (string, error) {
		chart := depth[pos]
		listed := false
		for _, n := range chart {
			if n == name {
				listed = true
				break
			}
		}

		switch {
		case name != "" && listed:
			return name, nil
		case e.opts.StarterPolicy == PolicyStrict && name == "":
			return "", &ValidationError{Position: pos, Reason: "missing required starter at " + string(pos)}
		case e.opts.StarterPolicy == PolicyStrict:
			return "", &ValidationError{Player: name, Position: pos}
		default:
			if index >= len(chart) {
				return "", &OutOfRangeError{Position: pos, Index: index, Have: len(chart)}
			}
			return chart[index], nil
		}
	}

	resolveOpt := func(pos models.Position, name *string, index int) (*string, error) {
		if name == nil {
			if e.opts.StarterPolicy == PolicyStrict {
				return nil, nil
			}
			chart := depth[pos]
			if index >= len(chart) {
				return nil, &OutOfRangeError{Position: pos, Index: index, Have: len(chart)}
			}
			filled := chart[index]
			return &filled, nil
		}
		resolved, err := resolve(pos, *name, index)
		if err != nil {
			return nil, err
		}
		return &resolved, nil
	}

	var out models.StarterLineup
	var err error

	if out.QB, err = resolve(models.PositionQB, lineup.QB, 0); err != nil {
		return models.StarterLineup{}, err
	}
	if out.RB1, err = resolve(models.PositionRB, lineup.RB1, 0); err != nil {
		return models.StarterLineup{}, err
	}
	if out.RB2, err = resolveOpt(models.PositionRB, lineup.RB2, 1); err != nil {
		return models.StarterLineup{}, err
	}
	if out.WR1, err = resolve(models.PositionWR, lineup.WR1, 0); err != nil {
		return models.StarterLineup{}, err
	}
	if out.WR2, err = resolve(models.PositionWR, lineup.WR2, 1); err != nil {
		return models.StarterLineup{}, err
	}
	if out.WR3, err = resolveOpt(models.PositionWR, lineup.WR3, 2); err != nil {
		return models.StarterLineup{}, err
	}
	if out.TE1, err = resolve(models.PositionTE, lineup.TE1, 0); err != nil {
		return models.StarterLineup{}, err
	}
	if out.TE2, err = resolveOpt(models.PositionTE, lineup.TE2, 1); err != nil {
		return models.StarterLineup{}, err
	}

	return out, nil
}
