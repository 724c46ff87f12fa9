package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ballistics/internal/dynamo"
)

func TestEnergy(t *testing.T) {
	m := NewEnergy(2.0, 9.81)

	x := dynamo.State{3, 4, 0, 10}
	m.Observe(x, 0)

	expected := 0.5*2*25 + 2*9.81*10
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestEnergyLoss(t *testing.T) {
	m := NewEnergyLoss(1.0, 10)

	m.Observe(dynamo.State{10, 0, 0, 0}, 0)
	m.Observe(dynamo.State{5, 0, 10, 0}, 1)

	// 50 J initially, 12.5 J remaining
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected loss 0.75, got %f", m.Value())
	}
}

func TestEnergyLossConservative(t *testing.T) {
	m := NewEnergyLoss(1.0, 10)

	m.Observe(dynamo.State{0, 10, 0, 0}, 0)
	m.Observe(dynamo.State{0, 0, 0, 5}, 1)

	if math.Abs(m.Value()) > 1e-12 {
		t.Errorf("trading speed for height should lose nothing, got %f", m.Value())
	}
}

func TestCollect(t *testing.T) {
	traj := &dynamo.Trajectory{
		Dim:    2,
		Times:  []float64{0, 1},
		States: []dynamo.State{{10, 0, 0, 0}, {5, 0, 10, 0}},
	}

	got := Collect(traj, NewEnergy(1, 10), NewEnergyLoss(1, 10))

	if got["energy"] != 12.5 {
		t.Errorf("energy = %f, want 12.5", got["energy"])
	}
	if math.Abs(got["energy_loss"]-0.75) > 1e-12 {
		t.Errorf("energy_loss = %f, want 0.75", got["energy_loss"])
	}
}
