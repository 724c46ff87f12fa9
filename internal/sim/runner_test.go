package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/sim"
	"github.com/san-kum/ballistics/internal/telemetry"
)

var handguns = []sim.Projectile{
	{Name: "Glock 17", MuzzleVelocity: 343, Mass: 0.00745},
	{Name: "Smith & Wesson M&P Shield", MuzzleVelocity: 300, Mass: 0.01166},
	{Name: "Colt 1911", MuzzleVelocity: 259, Mass: 0.0149},
	{Name: "SIG Sauer P226", MuzzleVelocity: 411, Mass: 0.00804},
	{Name: "Ruger LCP II", MuzzleVelocity: 290, Mass: 0.00583},
}

var _ = Describe("Runner", func() {
	var (
		ctx    context.Context
		opts   sim.Options
		target sim.Target
		env    physics.Environment
	)

	BeforeEach(func() {
		ctx = context.Background()
		opts = sim.DefaultOptions()
		opts.Workers = 3
		target = sim.Target{Height: 50, Distance: 1546}
		env = physics.DefaultEnvironment()
	})

	Context("with the default handgun batch", func() {
		It("returns one valid result per projectile in input order", func() {
			results, err := sim.NewRunner(opts, nil, nil).Run(ctx, handguns, sim.Radians(45), target, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(len(handguns)))

			for i, res := range results {
				Expect(res.Err).NotTo(HaveOccurred())
				Expect(res.Index).To(Equal(i))
				Expect(res.Projectile).To(Equal(handguns[i]))
				Expect(res.Trajectory.Len()).To(Equal(opts.Solver.Samples))
				Expect(res.Metrics.Injured).To(BeTrue())
				Expect(res.Metrics.Crossings).NotTo(BeEmpty())
				Expect(res.Metrics.EnergyLoss).To(BeNumerically(">", 0))
				Expect(res.Metrics.Observed.ApexHeight).To(BeNumerically("<", res.Metrics.MaxHeightClosedForm))
			}
		})

		It("reports no injury for a target above every apex", func() {
			target.Height = 5000
			results, err := sim.NewRunner(opts, nil, nil).Run(ctx, handguns, sim.Radians(45), target, env)
			Expect(err).NotTo(HaveOccurred())
			for _, res := range results {
				Expect(res.Metrics.Injured).To(BeFalse())
			}
		})

		It("simulates in three dimensions with z vertical", func() {
			opts.Dim = physics.Spatial
			results, err := sim.NewRunner(opts, nil, nil).Run(ctx, handguns[:1], sim.Radians(45), target, env)
			Expect(err).NotTo(HaveOccurred())

			traj := results[0].Trajectory
			Expect(traj.Dim).To(Equal(3))
			Expect(traj.Axis(1)).To(HaveEach(BeNumerically("~", 0, 1e-12)))
			Expect(results[0].Metrics.Observed.ApexHeight).To(BeNumerically(">", 100))
		})
	})

	Context("in vacuum", func() {
		It("returns to launch height at the closed-form time of flight", func() {
			p := handguns[0]
			angle := sim.Radians(45)
			env = env.Vacuum()
			tof := physics.TimeOfFlight(p.MuzzleVelocity, angle, env.Gravity)
			Expect(tof).To(BeNumerically("~", 49.45, 0.01))

			opts.Solver.T1 = tof
			res, err := sim.NewRunner(opts, nil, nil).Simulate(p, angle, target, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Err).NotTo(HaveOccurred())

			last := res.Trajectory.Len() - 1
			Expect(res.Trajectory.Times[last]).To(Equal(tof))
			Expect(res.Trajectory.Position(last, 1)).To(BeNumerically("~", 0, 1e-6))
			Expect(res.Metrics.MaxDistanceClosedForm).To(BeNumerically("~", 11995, 5))
			Expect(res.Trajectory.Position(last, 0)).To(BeNumerically("~", res.Metrics.MaxDistanceClosedForm, 1e-6))
			Expect(res.Metrics.Observed.ApexHeight).To(BeNumerically("~", res.Metrics.MaxHeightClosedForm, 0.5))
			Expect(res.Metrics.EnergyLoss).To(BeNumerically("~", 0, 1e-9))
			kinetic := 0.5 * p.Mass * p.MuzzleVelocity * p.MuzzleVelocity
			Expect(res.Metrics.FinalEnergy).To(BeNumerically("~", kinetic, 1e-6*kinetic))
		})
	})

	Context("with a pathological projectile", func() {
		It("fails only that entry and keeps the others in order", func() {
			batch := append([]sim.Projectile(nil), handguns...)
			batch[2] = sim.Projectile{Name: "feather", MuzzleVelocity: 259, Mass: 1e-12}

			reg := telemetry.NewRegistry()
			results, err := sim.NewRunner(opts, nil, reg).Run(ctx, batch, sim.Radians(45), target, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(5))

			for i, res := range results {
				Expect(res.Projectile.Name).To(Equal(batch[i].Name))
				if i == 2 {
					var ie *dynamo.IntegrationError
					Expect(errors.As(res.Err, &ie)).To(BeTrue())
					Expect(ie.LastTime).To(BeNumerically("<", opts.Solver.T1))
					Expect(res.Trajectory).To(BeNil())
					Expect(res.Metrics.Injured).To(BeFalse())
					continue
				}
				Expect(res.Err).NotTo(HaveOccurred())
				Expect(res.Trajectory.Len()).To(Equal(opts.Solver.Samples))
			}

			samples, err := reg.Summary()
			Expect(err).NotTo(HaveOccurred())
			counts := map[string]float64{}
			for _, s := range samples {
				if s.Name == "ballistics_simulations_total" {
					counts[s.Labels["status"]] = s.Value
				}
			}
			Expect(counts).To(HaveKeyWithValue(telemetry.StatusOK, 4.0))
			Expect(counts).To(HaveKeyWithValue(telemetry.StatusFailed, 1.0))
		})

		It("attaches invalid input to the entry without integrating", func() {
			batch := []sim.Projectile{handguns[0], {Name: "dud", MuzzleVelocity: 0, Mass: 0.01}}
			results, err := sim.NewRunner(opts, nil, nil).Run(ctx, batch, sim.Radians(30), target, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Err).NotTo(HaveOccurred())
			Expect(results[1].Err).To(MatchError(dynamo.ErrInvalidInput))
			Expect(math.IsNaN(results[1].Metrics.MaxHeightClosedForm)).To(BeTrue())
		})
	})

	Context("with batch-wide invalid input", func() {
		DescribeTable("rejects before integration",
			func(mutate func(*sim.Options, *float64, *sim.Target, *physics.Environment)) {
				angle := sim.Radians(45)
				mutate(&opts, &angle, &target, &env)
				results, err := sim.NewRunner(opts, nil, nil).Run(ctx, handguns, angle, target, env)
				Expect(err).To(MatchError(dynamo.ErrInvalidInput))
				Expect(results).To(BeNil())
			},
			Entry("NaN angle", func(_ *sim.Options, a *float64, _ *sim.Target, _ *physics.Environment) { *a = math.NaN() }),
			Entry("angle beyond π", func(_ *sim.Options, a *float64, _ *sim.Target, _ *physics.Environment) { *a = 4 }),
			Entry("negative target", func(_ *sim.Options, _ *float64, t *sim.Target, _ *physics.Environment) { t.Height = -1 }),
			Entry("negative air density", func(_ *sim.Options, _ *float64, _ *sim.Target, e *physics.Environment) { e.AirDensity = -1 }),
			Entry("bad dimension", func(o *sim.Options, _ *float64, _ *sim.Target, _ *physics.Environment) { o.Dim = 4 }),
			Entry("zero samples", func(o *sim.Options, _ *float64, _ *sim.Target, _ *physics.Environment) { o.Solver.Samples = 0 }),
		)
	})

	Context("sweeping launch angles", func() {
		It("orders results projectile-major", func() {
			angles := sim.Linspace(sim.Radians(-45), sim.Radians(45), 3)
			results, err := sim.NewRunner(opts, nil, nil).Sweep(ctx, handguns[:2], angles, target, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(6))

			for i, res := range results {
				Expect(res.Projectile).To(Equal(handguns[i/3]))
				Expect(res.Angle).To(Equal(angles[i%3]))
			}
			Expect(results[0].Metrics.Injured).To(BeFalse())
			Expect(math.IsNaN(results[0].Metrics.MaxDistanceClosedForm)).To(BeTrue())
		})

		It("stops on a canceled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := sim.NewRunner(opts, nil, nil).Sweep(cctx, handguns, sim.Linspace(0, 1, 4), target, env)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
