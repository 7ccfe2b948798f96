package physics

import "strings"

// Animal is a fully resolved movement record for one archetype.
// Defaults are merged in when the table is loaded, never at lookup time.
type Animal struct {
	ID        string
	Name      string
	Speed     float64 // horizontal run speed, px/s
	JumpScale float64 // multiplier on the base jump velocity
	Gravity   float64 // multiplier on the base gravity

	DoubleJump bool
	Glide      bool
	HighJump   bool // folded into JumpScale by the table
	WallJump   bool
	Dash       bool
	SpinBounce bool
}

// HasSecondJump reports whether the animal gets a mid-air impulse.
func (a Animal) HasSecondJump() bool {
	return a.DoubleJump || a.SpinBounce
}

// Abilities returns short tags for the ability flags that are set.
func (a Animal) Abilities() []string {
	var tags []string
	if a.DoubleJump {
		tags = append(tags, "2xJ")
	}
	if a.Glide {
		tags = append(tags, "Gli")
	}
	if a.WallJump {
		tags = append(tags, "WaJ")
	}
	if a.SpinBounce {
		tags = append(tags, "Spn")
	}
	if a.Dash {
		tags = append(tags, "Dsh")
	}
	if a.HighJump {
		tags = append(tags, "HiJ")
	}
	return tags
}

// AbilityString joins Abilities with spaces, or "-" when there are none.
func (a Animal) AbilityString() string {
	tags := a.Abilities()
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, " ")
}

// DisplayName returns Name, falling back to ID.
func (a Animal) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
