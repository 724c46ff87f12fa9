package sim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/ballistics/internal/analysis"
	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/integrators"
	"github.com/san-kum/ballistics/internal/metrics"
	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/telemetry"
)

// angleSlack absorbs rounding in degree to radian conversion at ±180°.
const angleSlack = 1e-9

// Runner simulates batches of projectiles. Each projectile is an
// independent task; a failing projectile is reported on its own Result
// and never stops the batch.
type Runner struct {
	opts     Options
	logger   *slog.Logger
	recorder telemetry.Recorder
}

func NewRunner(opts Options, logger *slog.Logger, recorder telemetry.Recorder) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if recorder == nil {
		recorder = telemetry.Nop{}
	}
	return &Runner{
		opts:     opts,
		logger:   logger,
		recorder: recorder,
	}
}

func (r *Runner) Options() Options {
	return r.opts
}

// Run simulates every projectile at angle. Results are in input order.
// The returned error is non-nil only for batch-wide invalid input or when
// ctx ends before all projectiles were scheduled.
func (r *Runner) Run(ctx context.Context, projectiles []Projectile, angle float64, target Target, env physics.Environment) ([]Result, error) {
	return r.Sweep(ctx, projectiles, []float64{angle}, target, env)
}

// Sweep simulates every projectile at every angle. Results are ordered
// projectile-major: all angles of projectiles[0] first.
func (r *Runner) Sweep(ctx context.Context, projectiles []Projectile, angles []float64, target Target, env physics.Environment) ([]Result, error) {
	if err := r.validateBatch(angles, target, env); err != nil {
		return nil, err
	}

	results := make([]Result, len(projectiles)*len(angles))
	err := dynamo.ForEach(ctx, len(results), r.opts.Workers, func(i int) {
		p := projectiles[i/len(angles)]
		res := r.simulate(p, angles[i%len(angles)], target, env)
		res.Index = i
		results[i] = res
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Simulate runs a single projectile at angle.
func (r *Runner) Simulate(p Projectile, angle float64, target Target, env physics.Environment) (Result, error) {
	if err := r.validateBatch([]float64{angle}, target, env); err != nil {
		return Result{}, err
	}
	return r.simulate(p, angle, target, env), nil
}

func (r *Runner) validateBatch(angles []float64, target Target, env physics.Environment) error {
	if err := r.opts.Validate(); err != nil {
		return err
	}
	for _, a := range angles {
		if !finite(a) || math.Abs(a) > math.Pi+angleSlack {
			return dynamo.Invalid("launch angle must be within [-π, π], got %g", a)
		}
	}
	if err := target.Validate(); err != nil {
		return err
	}
	return env.Validate()
}

func (r *Runner) simulate(p Projectile, angle float64, target Target, env physics.Environment) Result {
	start := time.Now()
	res := Result{
		Projectile: p,
		Angle:      angle,
		Metrics:    undefinedMetrics(),
	}

	log := r.logger.With("projectile", p.Name, "angle_deg", Degrees(angle))

	if err := p.Validate(); err != nil {
		res.Err = err
		log.Warn("projectile rejected", "error", err)
		r.recorder.ObserveSimulation(telemetry.StatusInvalid, 0, time.Since(start))
		return res
	}

	res.Metrics.MaxHeightClosedForm, res.Metrics.MaxDistanceClosedForm = physics.ClosedForm(p.MuzzleVelocity, angle, env.Gravity, r.opts.RangeMethod)

	dyn := physics.NewProjectile(r.opts.Dim, p.Mass, env)
	x0 := physics.InitialState(r.opts.Dim, p.MuzzleVelocity, angle, r.opts.Azimuth)

	traj, err := integrators.Solve(dyn, x0, r.opts.Solver)
	if err != nil {
		res.Err = err
		status := telemetry.StatusFailed
		if errors.Is(err, dynamo.ErrInvalidInput) {
			status = telemetry.StatusInvalid
		}
		var ie *dynamo.IntegrationError
		if errors.As(err, &ie) {
			log.Warn("integration failed", "last_time", ie.LastTime, "steps", ie.Steps, "error", err)
		} else {
			log.Warn("simulation rejected", "error", err)
		}
		r.recorder.ObserveSimulation(status, 0, time.Since(start))
		return res
	}

	axis := r.opts.Dim.VerticalAxis()
	res.Trajectory = traj
	res.Metrics.Injured = analysis.Intersects(traj, target.Height, axis)
	res.Metrics.Crossings = analysis.Crossings(traj, target.Height, axis)
	res.Metrics.Observed = analysis.Observe(traj, axis)

	loss := metrics.NewEnergyLoss(p.Mass, env.Gravity)
	energy := metrics.NewEnergy(p.Mass, env.Gravity)
	vals := metrics.Collect(traj, loss, energy)
	res.Metrics.EnergyLoss = vals[loss.Name()]
	res.Metrics.FinalEnergy = vals[energy.Name()]

	log.Debug("simulation complete",
		"steps", traj.Steps,
		"injured", res.Metrics.Injured,
		"apex", res.Metrics.Observed.ApexHeight,
	)
	r.recorder.ObserveSimulation(telemetry.StatusOK, traj.Steps, time.Since(start))
	return res
}
