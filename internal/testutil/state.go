package testutil

import "github.com/roach88/emergent/system"

// Charged builds an entity with a single charge property.
func Charged(id string, charge float64) system.Entity {
	return system.NewEntity(id, system.Properties{
		"charge": system.Number(charge),
	})
}

// ChargedAt builds an entity with a charge and a position vector.
func ChargedAt(id string, charge float64, pos ...float64) system.Entity {
	return system.NewEntity(id, system.Properties{
		"charge":   system.Number(charge),
		"position": system.Vector(pos),
	})
}

// Tuned builds an entity with a single frequency property.
func Tuned(id string, frequency float64) system.Entity {
	return system.NewEntity(id, system.Properties{
		"frequency": system.Number(frequency),
	})
}

// Energetic builds an entity with a single energy property.
func Energetic(id string, energy float64) system.Entity {
	return system.NewEntity(id, system.Properties{
		"energy": system.Number(energy),
	})
}

// TwoBody builds an atomic-scale state with one +1/-1 charged pair and a
// single rule of the given strength - the smallest configuration with a
// classifiable interaction.
func TwoBody(strength float64) *system.State {
	return system.NewState(system.ScaleAtomic,
		[]system.Entity{
			Charged("proton", 1),
			Charged("electron", -1),
		},
		[]system.Rule{
			{A: "proton", B: "electron", Strength: strength},
		},
	)
}
