package dynamics

import (
	"log/slog"
	"math"
	"slices"

	"github.com/roach88/emergent/system"
)

// EquilibriumParams configures FindEquilibria. Every knob is an explicit
// field; there are no hidden defaults.
type EquilibriumParams struct {
	// StepSize is the initial gradient-descent step.
	StepSize float64

	// Tolerance is the total per-iteration displacement below which the
	// arrangement counts as an equilibrium.
	Tolerance float64

	// MaxIterations caps the search. The cap is the sole cancellation
	// mechanism; exhausting it yields the last arrangement together with
	// a non-convergence error.
	MaxIterations int
}

// Assignment is one entity's adjusted position at (or nearest to) a local
// equilibrium of the field.
type Assignment struct {
	EntityID  string
	Position  []float64
	Potential float64
}

// gradientStep is the probe distance for central-difference gradients.
const gradientStep = 1e-4

// FindEquilibria nudges every positioned entity toward the local minimum of
// its potential with damped simultaneous gradient descent.
//
// All entities move together each iteration (each sees the others at their
// current iterate positions). If the total displacement grows for two
// consecutive iterations the step size halves, which guarantees the search
// never oscillates indefinitely within its cap.
//
// Returns one assignment per positioned entity in declaration order. When
// the cap is exhausted without meeting the tolerance, the last arrangement
// is returned together with a non-convergence error; callers may accept it
// anyway.
func FindEquilibria(f *Field, params EquilibriumParams) ([]Assignment, error) {
	if math.IsNaN(params.StepSize) || params.StepSize <= 0 {
		return nil, system.NewInvalidRangeError("step_size", params.StepSize)
	}
	if math.IsNaN(params.Tolerance) || params.Tolerance <= 0 {
		return nil, system.NewInvalidRangeError("tolerance", params.Tolerance)
	}
	if params.MaxIterations < 0 {
		return nil, system.NewInvalidRangeError("max_iterations", float64(params.MaxIterations))
	}

	ids := f.EntityIDs()
	positions := make(map[string][]float64, len(ids))
	for _, id := range ids {
		positions[id] = slices.Clone(f.positions[id])
	}

	step := params.StepSize
	prevDisplacement := math.Inf(1)
	growthStreak := 0

	for iter := 0; iter < params.MaxIterations; iter++ {
		next := make(map[string][]float64, len(ids))
		displacement := 0.0
		for _, id := range ids {
			pos := positions[id]
			grad := gradient(f, id, pos, positions)
			moved := make([]float64, len(pos))
			for i := range pos {
				moved[i] = pos[i] - step*grad[i]
			}
			next[id] = moved
			displacement += euclidean(pos, moved)
		}
		positions = next

		slog.Debug("equilibrium step",
			"iteration", iter+1,
			"displacement", displacement,
			"step_size", step)

		if displacement < params.Tolerance {
			return assignments(f, ids, positions), nil
		}

		// Basic damping: two consecutive growth steps halve the step size.
		if displacement > prevDisplacement {
			growthStreak++
			if growthStreak >= 2 {
				step /= 2
				growthStreak = 0
			}
		} else {
			growthStreak = 0
		}
		prevDisplacement = displacement
	}

	return assignments(f, ids, positions), system.NewNonConvergenceError(params.MaxIterations)
}

// gradient estimates the potential gradient at pos by central differences.
func gradient(f *Field, id string, pos []float64, positions map[string][]float64) []float64 {
	grad := make([]float64, len(pos))
	probe := slices.Clone(pos)
	for i := range pos {
		probe[i] = pos[i] + gradientStep
		hi := f.potentialWith(id, probe, positions)
		probe[i] = pos[i] - gradientStep
		lo := f.potentialWith(id, probe, positions)
		probe[i] = pos[i]
		grad[i] = (hi - lo) / (2 * gradientStep)
	}
	return grad
}

func assignments(f *Field, ids []string, positions map[string][]float64) []Assignment {
	out := make([]Assignment, 0, len(ids))
	for _, id := range ids {
		pos := positions[id]
		out = append(out, Assignment{
			EntityID:  id,
			Position:  pos,
			Potential: f.potentialWith(id, pos, positions),
		})
	}
	return out
}
