package domain

// Modifier is one stage of a damage or defense pipeline. Modifiers are
// stateless: Apply consumes the running value plus the critical flag for
// this roll and returns the transformed value. Defense pipelines always
// pass critical=false.
type Modifier interface {
	Apply(value int, critical bool) int
}

// FlatModifier adds a fixed amount.
type FlatModifier struct {
	Amount int
}

func (m FlatModifier) Apply(value int, _ bool) int {
	return value + m.Amount
}

// PercentModifier scales the value by a percentage, truncating.
// Percent=150 means +50%.
type PercentModifier struct {
	Percent int
}

func (m PercentModifier) Apply(value int, _ bool) int {
	return value * m.Percent / 100
}

// CriticalBonusModifier adds a bonus only on critical rolls. Creature-level
// pipelines never see the critical flag set, so this only fires inside a
// weapon's own pipeline.
type CriticalBonusModifier struct {
	Bonus int
}

func (m CriticalBonusModifier) Apply(value int, critical bool) int {
	if critical {
		return value + m.Bonus
	}
	return value
}

// DifficultyModifier scales damage by the encounter difficulty.
type DifficultyModifier struct {
	Difficulty Difficulty
}

func (m DifficultyModifier) Apply(value int, _ bool) int {
	return value * m.Difficulty.DamagePercent() / 100
}

// applyModifiers runs a value through an ordered pipeline.
func applyModifiers(value int, critical bool, mods []Modifier) int {
	for _, m := range mods {
		value = m.Apply(value, critical)
	}
	return value
}
