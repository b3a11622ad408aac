// Package components defines ECS components for the garden.
package components

import "fmt"

// ArmKind tags a blade arm with the pattern it drives cells toward.
type ArmKind uint8

const (
	ArmComb   ArmKind = iota // relaxes toward the target pattern
	ArmSmooth                // relaxes toward zero
)

// String returns the config spelling of the kind.
func (k ArmKind) String() string {
	switch k {
	case ArmComb:
		return "comb"
	case ArmSmooth:
		return "smooth"
	default:
		return fmt.Sprintf("ArmKind(%d)", uint8(k))
	}
}

// ParseArmKind converts a config string into an ArmKind.
func ParseArmKind(s string) (ArmKind, error) {
	switch s {
	case "comb":
		return ArmComb, nil
	case "smooth":
		return ArmSmooth, nil
	}
	return ArmComb, fmt.Errorf("unknown arm kind %q", s)
}

// Arm is one ray of the blade, fixed relative to the blade angle.
type Arm struct {
	Offset float64 // radians added to the blade angle
	Kind   ArmKind
}
