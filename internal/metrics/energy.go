package metrics

import (
	"github.com/san-kum/swsim/internal/ocean"
)

// KineticEnergy reports the latest U^2 + V^2 sum.
type KineticEnergy struct {
	value float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s ocean.Snapshot) { k.value = s.KineticEnergy() }

func (k *KineticEnergy) Value() float64 { return k.value }

func (k *KineticEnergy) Reset() { k.value = 0 }

// EnergyDecay is the ratio of the latest kinetic energy to the peak seen so
// far. It stays at 1 while the flow spins up and falls as drag wins.
type EnergyDecay struct {
	peak, current float64
}

func NewEnergyDecay() *EnergyDecay { return &EnergyDecay{} }

func (e *EnergyDecay) Name() string { return "energy_decay" }

func (e *EnergyDecay) Observe(s ocean.Snapshot) {
	e.current = s.KineticEnergy()
	if e.current > e.peak {
		e.peak = e.current
	}
}

func (e *EnergyDecay) Value() float64 {
	if e.peak == 0 {
		return 1
	}
	return e.current / e.peak
}

func (e *EnergyDecay) Reset() {
	e.peak = 0
	e.current = 0
}
