package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/sim"
)

// WriteCSV writes one summary row per result. Undefined values are empty.
func WriteCSV(w io.Writer, results []sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"index", "projectile", "muzzle_velocity", "mass", "angle_deg",
		"max_height_cf", "max_distance_cf", "apex_height", "apex_time",
		"range", "impact_time", "energy_loss", "final_energy", "injured", "error",
	}); err != nil {
		return err
	}
	for _, res := range results {
		m := res.Metrics
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		rec := []string{
			strconv.Itoa(res.Index),
			res.Projectile.Name,
			num(res.Projectile.MuzzleVelocity),
			num(res.Projectile.Mass),
			num(sim.Degrees(res.Angle)),
			num(m.MaxHeightClosedForm),
			num(m.MaxDistanceClosedForm),
			num(m.Observed.ApexHeight),
			num(m.Observed.ApexTime),
			num(m.Observed.Range),
			num(m.Observed.ImpactTime),
			num(m.EnergyLoss),
			num(m.FinalEnergy),
			strconv.FormatBool(m.Injured),
			errText,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes every sample of traj: time, velocities, positions.
func WriteTrajectoryCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	axes := []string{"x", "y", "z"}[:traj.Dim]
	header := []string{"t"}
	for _, a := range axes {
		header = append(header, "v"+a)
	}
	header = append(header, axes...)
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, 1+2*traj.Dim)
	for i, t := range traj.Times {
		rec[0] = num(t)
		for j, v := range traj.States[i] {
			rec[1+j] = num(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	if !finite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
