package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/ballistics/internal/sim"
)

type resultJSON struct {
	Index          int       `json:"index"`
	Projectile     string    `json:"projectile"`
	MuzzleVelocity float64   `json:"muzzle_velocity"`
	Mass           float64   `json:"mass"`
	AngleDeg       float64   `json:"angle_deg"`
	MaxHeightCF    *float64  `json:"max_height_closed_form"`
	MaxDistanceCF  *float64  `json:"max_distance_closed_form"`
	ApexHeight     *float64  `json:"apex_height"`
	ApexTime       *float64  `json:"apex_time"`
	Range          *float64  `json:"range"`
	ImpactTime     *float64  `json:"impact_time"`
	Landed         bool      `json:"landed"`
	EnergyLoss     *float64  `json:"energy_loss"`
	FinalEnergy    *float64  `json:"final_energy"`
	Injured        bool      `json:"injured"`
	Crossings      []float64 `json:"crossings,omitempty"`
	Samples        int       `json:"samples"`
	Error          string    `json:"error,omitempty"`
}

type batchJSON struct {
	Target  sim.Target   `json:"target"`
	Results []resultJSON `json:"results"`
}

// WriteJSON encodes results with undefined metrics as null.
func WriteJSON(w io.Writer, results []sim.Result, target sim.Target) error {
	out := batchJSON{Target: target, Results: make([]resultJSON, 0, len(results))}
	for _, res := range results {
		m := res.Metrics
		r := resultJSON{
			Index:          res.Index,
			Projectile:     res.Projectile.Name,
			MuzzleVelocity: res.Projectile.MuzzleVelocity,
			Mass:           res.Projectile.Mass,
			AngleDeg:       sim.Degrees(res.Angle),
			MaxHeightCF:    nullable(m.MaxHeightClosedForm),
			MaxDistanceCF:  nullable(m.MaxDistanceClosedForm),
			ApexHeight:     nullable(m.Observed.ApexHeight),
			ApexTime:       nullable(m.Observed.ApexTime),
			Range:          nullable(m.Observed.Range),
			ImpactTime:     nullable(m.Observed.ImpactTime),
			Landed:         m.Observed.Landed,
			EnergyLoss:     nullable(m.EnergyLoss),
			FinalEnergy:    nullable(m.FinalEnergy),
			Injured:        m.Injured,
			Crossings:      m.Crossings,
			Samples:        res.Trajectory.Len(),
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		out.Results = append(out.Results, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nullable(v float64) *float64 {
	if !finite(v) {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
