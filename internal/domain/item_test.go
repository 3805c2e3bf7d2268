package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackItemCalculateDamageWearsWeapon(t *testing.T) {
	weapon := NewAttackItem("rusty_sword", "Rusty Sword", 4, 1, DamagePhysical, 0, 3)
	rng := rand.New(rand.NewSource(1))

	roll := weapon.CalculateDamage(rng)

	assert.Equal(t, 4, roll.Damage)
	assert.False(t, roll.Critical, "zero critical chance never crits")
	assert.Equal(t, 2, roll.Durability)
	assert.False(t, roll.Broke)
}

func TestAttackItemCriticalMultiplierTruncates(t *testing.T) {
	// CriticalChance 100 makes every roll critical regardless of the seed.
	weapon := NewAttackItem("longsword", "Longsword", 5, 1, DamagePhysical, 100, 10)
	rng := rand.New(rand.NewSource(42))

	roll := weapon.CalculateDamage(rng)

	require.True(t, roll.Critical)
	// 5 * 3 / 2 truncates to 7, never rounds up.
	assert.Equal(t, 7, roll.Damage)
}

func TestAttackItemModifierOrderMatters(t *testing.T) {
	flatFirst := NewAttackItem("a", "A", 10, 1, DamagePhysical, 0, 10)
	flatFirst.AddModifier(FlatModifier{Amount: 10})
	flatFirst.AddModifier(PercentModifier{Percent: 150})

	percentFirst := NewAttackItem("b", "B", 10, 1, DamagePhysical, 0, 10)
	percentFirst.AddModifier(PercentModifier{Percent: 150})
	percentFirst.AddModifier(FlatModifier{Amount: 10})

	rng := rand.New(rand.NewSource(7))
	a := flatFirst.CalculateDamage(rand.New(rand.NewSource(7)))
	b := percentFirst.CalculateDamage(rng)

	assert.Equal(t, 30, a.Damage) // (10+10)*150%
	assert.Equal(t, 25, b.Damage) // 10*150%+10
}

func TestAttackItemDamageFloor(t *testing.T) {
	weapon := NewAttackItem("cursed", "Cursed Blade", 2, 1, DamagePhysical, 0, 5)
	weapon.AddModifier(FlatModifier{Amount: -10})

	roll := weapon.CalculateDamage(rand.New(rand.NewSource(3)))

	assert.Equal(t, 1, roll.Damage, "damage never drops below 1")
}

func TestReduceDurabilityBrokeExactlyOnce(t *testing.T) {
	weapon := NewAttackItem("glass_dagger", "Glass Dagger", 3, 1, DamagePhysical, 0, 2)

	first := weapon.ReduceDurability(1)
	assert.Equal(t, 1, first.Durability)
	assert.False(t, first.Broke)

	crossing := weapon.ReduceDurability(5)
	assert.Equal(t, 0, crossing.Durability, "durability clamps at 0")
	assert.True(t, crossing.Broke, "broke reported on the crossing")

	again := weapon.ReduceDurability(1)
	assert.Equal(t, 0, again.Durability)
	assert.False(t, again.Broke, "already broken, never reported twice")
}

func TestRepairClampsAtMaxDurability(t *testing.T) {
	weapon := NewAttackItem("longsword", "Longsword", 5, 1, DamagePhysical, 0, 10)
	weapon.ReduceDurability(6)

	change := weapon.Repair(100)

	assert.Equal(t, 10, change.Durability)
}

func TestRepairRestoresBrokenWeapon(t *testing.T) {
	weapon := NewAttackItem("longsword", "Longsword", 5, 1, DamagePhysical, 0, 10)
	weapon.ReduceDurability(10)
	require.True(t, weapon.Broken())

	weapon.Repair(3)

	assert.False(t, weapon.Broken())
	assert.Equal(t, 3, weapon.Durability)
}

type doubleDamageStrategy struct{}

func (doubleDamageStrategy) ExecuteAttack(item *AttackItem, _ *rand.Rand) int {
	return item.BaseDamage * 2
}

func TestPerformSpecialAttackWearsFivePoints(t *testing.T) {
	weapon := NewAttackItem("greataxe", "Greataxe", 6, 1, DamagePhysical, 0, 12)

	roll := weapon.PerformSpecialAttack(doubleDamageStrategy{}, rand.New(rand.NewSource(9)))

	assert.Equal(t, 12, roll.Damage)
	assert.Equal(t, 7, roll.Durability)
	assert.False(t, roll.Broke)
}

func TestDefenceItemTotalDefense(t *testing.T) {
	tests := []struct {
		name      string
		base      int
		modifiers []Modifier
		want      int
	}{
		{name: "plain", base: 4, want: 4},
		{name: "flat bonus", base: 4, modifiers: []Modifier{FlatModifier{Amount: 2}}, want: 6},
		{name: "percent scales truncating", base: 5, modifiers: []Modifier{PercentModifier{Percent: 150}}, want: 7},
		{name: "floors at zero", base: 2, modifiers: []Modifier{FlatModifier{Amount: -10}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			armor := NewDefenceItem("chainmail", "Chainmail", tt.base, DefensePhysical, 10)
			for _, m := range tt.modifiers {
				armor.AddModifier(m)
			}

			before := armor.Durability
			assert.Equal(t, tt.want, armor.TotalDefense())
			assert.Equal(t, before, armor.Durability, "TotalDefense has no durability side effect")
		})
	}
}

func TestClampPercentOnConstruction(t *testing.T) {
	tooHigh := NewAttackItem("a", "A", 1, 1, DamagePhysical, 150, 1)
	assert.Equal(t, 100, tooHigh.CriticalChance)

	negative := NewAttackItem("b", "B", 1, 1, DamagePhysical, -5, 1)
	assert.Equal(t, 0, negative.CriticalChance)
}
