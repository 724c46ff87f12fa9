package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// heights builds a 2D trajectory with unit time steps, x advancing by 10.
func heights(hs ...float64) *dynamo.Trajectory {
	tr := &dynamo.Trajectory{Dim: 2}
	for i, h := range hs {
		tr.Times = append(tr.Times, float64(i))
		tr.States = append(tr.States, dynamo.State{10, 0, float64(i) * 10, h})
	}
	return tr
}

func TestIntersects(t *testing.T) {
	tr := heights(0, 10, 60, 40, 0)

	if !Intersects(tr, 50, 1) {
		t.Error("expected crossing at height 50")
	}
	if Intersects(tr, 200, 1) {
		t.Error("unexpected crossing at height 200")
	}
	if !Intersects(tr, 60, 1) {
		t.Error("touching the target height should count")
	}
}

func TestIntersects_Short(t *testing.T) {
	if Intersects(heights(50), 50, 1) {
		t.Error("single-sample trajectory cannot intersect")
	}
	if Intersects(&dynamo.Trajectory{Dim: 2}, 0, 1) {
		t.Error("empty trajectory cannot intersect")
	}
	if Intersects(nil, 0, 1) {
		t.Error("nil trajectory cannot intersect")
	}
}

func TestIntersects_IgnoresHorizontal(t *testing.T) {
	tr := heights(0, 100, 0)
	for i := range tr.States {
		tr.States[i][2] = 1e6
	}
	if !Intersects(tr, 50, 1) {
		t.Error("horizontal position must not affect the height test")
	}
}

func TestCrossings(t *testing.T) {
	got := Crossings(heights(0, 10, 60, 40, 0), 50, 1)

	want := []float64{1.8, 2.5}
	if len(got) != len(want) {
		t.Fatalf("Crossings = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("crossing %d = %g, want %g", i, got[i], want[i])
		}
	}

	touch := Crossings(heights(0, 50, 0), 50, 1)
	if len(touch) != 1 || touch[0] != 1 {
		t.Errorf("touching sample should be reported once, got %v", touch)
	}
}

func TestObserve(t *testing.T) {
	obs := Observe(heights(0, 10, 60, 40, -20), 1)

	if obs.ApexHeight != 60 || obs.ApexTime != 2 {
		t.Errorf("apex = %g at %g, want 60 at 2", obs.ApexHeight, obs.ApexTime)
	}
	if !obs.Landed {
		t.Fatal("expected landing")
	}
	if math.Abs(obs.ImpactTime-(3+40.0/60.0)) > 1e-12 {
		t.Errorf("impact time = %g", obs.ImpactTime)
	}
	if math.Abs(obs.Range-(30+10*40.0/60.0)) > 1e-9 {
		t.Errorf("range = %g", obs.Range)
	}
	if obs.FinalHeight != -20 {
		t.Errorf("final height = %g", obs.FinalHeight)
	}
}

func TestObserve_StillAirborne(t *testing.T) {
	obs := Observe(heights(0, 10, 20), 1)

	if obs.Landed || !math.IsNaN(obs.Range) || !math.IsNaN(obs.ImpactTime) {
		t.Errorf("expected airborne result, got %+v", obs)
	}
	if obs.ApexHeight != 20 {
		t.Errorf("apex = %g, want 20", obs.ApexHeight)
	}
}

func TestObserve_Empty(t *testing.T) {
	obs := Observe(&dynamo.Trajectory{Dim: 2}, 1)
	if !math.IsNaN(obs.ApexHeight) || obs.Landed {
		t.Errorf("empty trajectory should give NaN metrics, got %+v", obs)
	}
}

func TestPath(t *testing.T) {
	tr := &dynamo.Trajectory{
		Dim:   3,
		Times: []float64{0, 1},
		States: []dynamo.State{
			{0, 0, 0, 0, 0, 0},
			{0, 0, 0, 3, 4, 7},
		},
	}
	pts := Path(tr, 2)
	if pts[1].Range != 5 || pts[1].Height != 7 {
		t.Errorf("Path point = %+v, want {5 7}", pts[1])
	}
}

func TestPathToASCII(t *testing.T) {
	out := PathToASCII(Path(heights(0, 10, 60, 40, 0), 1), 40, 10, 50)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") || !strings.Contains(out, "┄") {
		t.Error("expected trajectory points and target line")
	}
	if PathToASCII(nil, 40, 10, 0) != "" {
		t.Error("empty path should render nothing")
	}
}
