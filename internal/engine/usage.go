package engine

import (
	"math"

	"github.com/propline/prop-engine/internal/models"
)

// News multipliers nudge a player's volume shares before renormalization.
const (
	newsUpMultiplier   = 1.10
	newsDownMultiplier = 0.90
)

// DeriveUsage converts raw trailing-window usage records into per-player
// usage shares. Team totals are floored at 1.0 so a team with no recorded
// volume degrades to zero shares instead of dividing by zero. News arrows
// scale rush/target/red-zone shares (snap share is untouched); rush and
// target shares are then renormalized back to sum to 1.0 across the team.
// Red-zone shares are only renormalized when renormalizeRZ is set: the
// original model left them un-renormalized after the news nudge, so the
// asymmetry stays the default and the flag exposes the alternative.
func DeriveUsage(records map[string]models.RoleUsage, flags map[string]models.NewsFlag, renormalizeRZ bool) (map[string]models.PlayerUsage, error) {
	if err := validateUsage(records); err != nil {
		return nil, err
	}

	var totalRush, totalTgt, totalRZRush, totalRZTgt float64
	for _, r := range records {
		totalRush += float64(r.RushAtt)
		totalTgt += float64(r.Targets)
		totalRZRush += float64(r.RZRush)
		totalRZTgt += float64(r.RZTgt)
	}
	totalRush = floorDenominator(totalRush)
	totalTgt = floorDenominator(totalTgt)
	totalRZRush = floorDenominator(totalRZRush)
	totalRZTgt = floorDenominator(totalRZTgt)

	usage := make(map[string]models.PlayerUsage, len(records))
	for name, r := range records {
		mult := 1.0
		switch flags[name] {
		case models.NewsFlagUp:
			mult = newsUpMultiplier
		case models.NewsFlagDown:
			mult = newsDownMultiplier
		}

		usage[name] = models.PlayerUsage{
			SnapShare:     r.SnapPct,
			RushShare:     float64(r.RushAtt) / totalRush * mult,
			TargetShare:   float64(r.Targets) / totalTgt * mult,
			RZRushShare:   float64(r.RZRush) / totalRZRush * mult,
			RZTargetShare: float64(r.RZTgt) / totalRZTgt * mult,
		}
	}

	// Second pass: rush and target shares must sum to 1.0 again after the
	// news nudges.
	var rushSum, tgtSum, rzRushSum, rzTgtSum float64
	for _, u := range usage {
		rushSum += u.RushShare
		tgtSum += u.TargetShare
		rzRushSum += u.RZRushShare
		rzTgtSum += u.RZTargetShare
	}
	rushSum = floorDenominator(rushSum)
	tgtSum = floorDenominator(tgtSum)
	rzRushSum = floorDenominator(rzRushSum)
	rzTgtSum = floorDenominator(rzTgtSum)

	for name, u := range usage {
		u.RushShare /= rushSum
		u.TargetShare /= tgtSum
		if renormalizeRZ {
			u.RZRushShare /= rzRushSum
			u.RZTargetShare /= rzTgtSum
		}
		usage[name] = u
	}

	return usage, nil
}

// floorDenominator guards share divisions: a zero total means no recorded
// volume, which must yield zero shares rather than a division error. Sums
// that are merely scaled down by news arrows stay as-is so renormalization
// still brings them back to 1.0.
func floorDenominator(sum float64) float64 {
	if sum == 0 {
		return 1.0
	}
	return sum
}

// validateUsage fails fast on malformed counts so upstream data bugs are
// not masked as zero shares.
func validateUsage(records map[string]models.RoleUsage) error {
	for name, r := range records {
		if r.RushAtt < 0 || r.Targets < 0 || r.RZRush < 0 || r.RZTgt < 0 {
			return &ValidationError{Reason: "negative usage count for " + name}
		}
		if r.SnapPct < 0 || r.SnapPct > 1 || math.IsNaN(r.SnapPct) {
			return &ValidationError{Reason: "snap_pct out of [0,1] for " + name}
		}
	}
	return nil
}
