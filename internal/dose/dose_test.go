package dose

import (
	"math"
	"testing"

	"github.com/julianstephens/nicolog/internal/models"
)

func TestEstimateMg(t *testing.T) {
	tests := []struct {
		name     string
		source   models.Source
		quantity float64
		strength float64
		expected float64
	}{
		{"cigarettes", models.SourceCigarettes, 3, 2, 6},
		{"vape", models.SourceVape, 200, 10, 10},
		{"snus", models.SourceSnus, 4, 1.5, 6},
		{"vape partial ml", models.SourceVape, 50, 20, 5},
		{"none source", models.SourceNone, 5, 5, 0},
		{"unknown source", models.Source("Pipe"), 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateMg(tt.source, tt.quantity, tt.strength)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EstimateMg(%s, %v, %v) = %v, want %v", tt.source, tt.quantity, tt.strength, got, tt.expected)
			}
		})
	}
}

func TestEstimateMgNonPositiveInput(t *testing.T) {
	inputs := [][2]float64{{0, 10}, {-1, 10}, {10, 0}, {10, -2}, {0, 0}}

	for _, source := range models.Sources {
		for _, in := range inputs {
			if got := EstimateMg(source, in[0], in[1]); got != 0 {
				t.Errorf("EstimateMg(%s, %v, %v) = %v, want 0", source, in[0], in[1], got)
			}
		}
	}
}

func TestUnitFor(t *testing.T) {
	if UnitFor(models.SourceVape) != "puffs" {
		t.Errorf("unexpected vape unit %q", UnitFor(models.SourceVape))
	}
	if UnitFor(models.SourceNone) != "" {
		t.Errorf("check-ins should have no unit, got %q", UnitFor(models.SourceNone))
	}
	if DefaultStrength(models.SourceNone) != 0 {
		t.Error("check-ins should have no default strength")
	}
}
