package ocean

import "strings"

// RotationScheme selects how the Coriolis coefficient varies with row.
type RotationScheme int

const (
	RotationNone RotationScheme = iota
	RotationWithLatitude
	RotationPlusMinus
	RotationUniform
)

var rotationNames = map[RotationScheme]string{
	RotationNone:         "none",
	RotationWithLatitude: "withlatitude",
	RotationPlusMinus:    "plusminus",
	RotationUniform:      "uniform",
}

func (r RotationScheme) String() string {
	if name, ok := rotationNames[r]; ok {
		return name
	}
	return "none"
}

// ParseRotationScheme maps a name to a scheme. Unknown names yield
// RotationNone, which produces zero rotation everywhere.
func ParseRotationScheme(name string) RotationScheme {
	key := normalize(name)
	for scheme, n := range rotationNames {
		if n == key {
			return scheme
		}
	}
	return RotationNone
}

// WindScheme selects the zonal wind forcing profile.
type WindScheme int

const (
	WindCalm WindScheme = iota
	WindCurled
	WindUniform
)

var windNames = map[WindScheme]string{
	WindCalm:    "calm",
	WindCurled:  "curled",
	WindUniform: "uniform",
}

func (w WindScheme) String() string {
	if name, ok := windNames[w]; ok {
		return name
	}
	return "calm"
}

// ParseWindScheme maps a name to a scheme. Unknown names yield WindCalm.
func ParseWindScheme(name string) WindScheme {
	key := normalize(name)
	for scheme, n := range windNames {
		if n == key {
			return scheme
		}
	}
	return WindCalm
}

// Perturbation is the initial disturbance applied to H.
type Perturbation int

const (
	PerturbNone Perturbation = iota
	PerturbTower
	PerturbNSGradient
	PerturbEWGradient
)

var perturbationNames = map[Perturbation]string{
	PerturbNone:       "none",
	PerturbTower:      "tower",
	PerturbNSGradient: "nsgradient",
	PerturbEWGradient: "ewgradient",
}

func (p Perturbation) String() string {
	if name, ok := perturbationNames[p]; ok {
		return name
	}
	return "none"
}

// ParsePerturbation maps a name to a perturbation. Unknown names yield
// PerturbNone.
func ParsePerturbation(name string) Perturbation {
	key := normalize(name)
	for p, n := range perturbationNames {
		if n == key {
			return p
		}
	}
	return PerturbNone
}

// normalize folds case and drops separators so "PlusMinus", "plus-minus"
// and "plus_minus" all match.
func normalize(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}
