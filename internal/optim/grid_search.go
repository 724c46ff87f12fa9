// Package optim searches launch angles for the best scoring trajectory.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/sim"
)

// Score rates one result; NaN means the result does not qualify.
type Score func(sim.Result) float64

func ObservedRange(r sim.Result) float64 {
	if !r.OK() {
		return math.NaN()
	}
	return r.Metrics.Observed.Range
}

func ApexHeight(r sim.Result) float64 {
	if !r.OK() {
		return math.NaN()
	}
	return r.Metrics.Observed.ApexHeight
}

// Best is the highest scoring angle found for one projectile. Angle and
// Score are NaN and Index is -1 when no angle qualified.
type Best struct {
	Projectile sim.Projectile
	Angle      float64
	Score      float64
	Index      int
}

// Search picks the best angle per projectile from results laid out
// projectile-major with perProjectile angles each, as sim.Runner.Sweep
// returns them. Ties keep the first angle.
func Search(results []sim.Result, perProjectile int, score Score) []Best {
	if perProjectile <= 0 {
		return nil
	}
	var out []Best
	for start := 0; start+perProjectile <= len(results); start += perProjectile {
		best := Best{
			Projectile: results[start].Projectile,
			Angle:      math.NaN(),
			Score:      math.NaN(),
			Index:      -1,
		}
		for i := start; i < start+perProjectile; i++ {
			val := score(results[i])
			if math.IsNaN(val) || math.IsInf(val, 0) {
				continue
			}
			if best.Index < 0 || val > best.Score {
				best.Angle = results[i].Angle
				best.Score = val
				best.Index = i
			}
		}
		out = append(out, best)
	}
	return out
}

// GridSearch sweeps angles for every projectile and returns the best per
// projectile in input order.
func GridSearch(
	ctx context.Context,
	runner *sim.Runner,
	projectiles []sim.Projectile,
	angles []float64,
	target sim.Target,
	env physics.Environment,
	score Score,
) ([]Best, error) {
	results, err := runner.Sweep(ctx, projectiles, angles, target, env)
	if err != nil {
		return nil, err
	}
	return Search(results, len(angles), score), nil
}
