package domain

import "math/rand"

// DamageType categorizes the damage a weapon deals.
type DamageType string

const (
	DamagePhysical DamageType = "PHYSICAL"
	DamageMagical  DamageType = "MAGICAL"
	DamageFire     DamageType = "FIRE"
	DamageIce      DamageType = "ICE"
	DamagePiercing DamageType = "PIERCING"
)

// DefenseType categorizes what a piece of armor protects against.
type DefenseType string

const (
	DefensePhysical DefenseType = "PHYSICAL"
	DefenseMagical  DefenseType = "MAGICAL"
	DefenseFire     DefenseType = "FIRE"
	DefenseIce      DefenseType = "ICE"
	DefensePiercing DefenseType = "PIERCING"
)

// Item is the capability common to everything a creature can pick up.
// Creature.Pick dispatches on the concrete type: *AttackItem equips as a
// weapon, *DefenceItem as armor, *HealthPotion is consumed on the spot.
type Item interface {
	Name() string
	Display() string
}

// DurabilityChange reports the outcome of a durability mutation.
// Broke is true exactly when the call crossed from >0 to 0.
type DurabilityChange struct {
	Durability int  `json:"durability"`
	Broke      bool `json:"broke"`
}

// DamageRoll is the outcome of one weapon damage calculation.
type DamageRoll struct {
	Damage     int  `json:"damage"`
	Critical   bool `json:"critical"`
	Durability int  `json:"durability"`
	Broke      bool `json:"broke"`
}

// SpecialAttackStrategy computes the damage of a weapon's special attack.
// Strategies hold no item state.
type SpecialAttackStrategy interface {
	ExecuteAttack(item *AttackItem, rng *rand.Rand) int
}

// AttackItem is an equippable weapon.
type AttackItem struct {
	InternalName   string     `json:"internal_name"`
	DisplayName    string     `json:"display_name"`
	BaseDamage     int        `json:"base_damage"`
	Range          int        `json:"range"`
	DamageType     DamageType `json:"damage_type"`
	CriticalChance int        `json:"critical_chance"` // 0-100
	Durability     int        `json:"durability"`
	MaxDurability  int        `json:"max_durability"`
	Modifiers      []Modifier `json:"-"`
}

// NewAttackItem creates a weapon with full durability.
func NewAttackItem(internalName, displayName string, baseDamage, itemRange int, damageType DamageType, criticalChance, durability int) *AttackItem {
	return &AttackItem{
		InternalName:   internalName,
		DisplayName:    displayName,
		BaseDamage:     baseDamage,
		Range:          itemRange,
		DamageType:     damageType,
		CriticalChance: clampPercent(criticalChance),
		Durability:     durability,
		MaxDurability:  durability,
	}
}

func (a *AttackItem) Name() string    { return a.InternalName }
func (a *AttackItem) Display() string { return a.DisplayName }

// Broken reports whether the weapon is worn out. A broken weapon stays in
// its slot but contributes nothing to an attack until repaired.
func (a *AttackItem) Broken() bool { return a.Durability <= 0 }

// AddModifier appends to the weapon's pipeline. Insertion order is
// application order.
func (a *AttackItem) AddModifier(m Modifier) {
	a.Modifiers = append(a.Modifiers, m)
}

// CalculateDamage rolls one use of the weapon: base damage through the
// modifier pipeline with the critical flag, a 1.5x truncating multiplier on
// a critical, floored at 1. Every call wears the weapon by one point.
func (a *AttackItem) CalculateDamage(rng *rand.Rand) DamageRoll {
	critical := rng.Intn(100)+1 <= a.CriticalChance

	damage := applyModifiers(a.BaseDamage, critical, a.Modifiers)
	if critical {
		damage = damage * 3 / 2
	}
	if damage < 1 {
		damage = 1
	}

	change := a.ReduceDurability(1)
	return DamageRoll{
		Damage:     damage,
		Critical:   critical,
		Durability: change.Durability,
		Broke:      change.Broke,
	}
}

// PerformSpecialAttack delegates the damage computation to the strategy and
// then wears the weapon by five points.
func (a *AttackItem) PerformSpecialAttack(strategy SpecialAttackStrategy, rng *rand.Rand) DamageRoll {
	damage := strategy.ExecuteAttack(a, rng)
	if damage < 1 {
		damage = 1
	}

	change := a.ReduceDurability(5)
	return DamageRoll{
		Damage:     damage,
		Durability: change.Durability,
		Broke:      change.Broke,
	}
}

// ReduceDurability wears the weapon, clamping at 0.
func (a *AttackItem) ReduceDurability(amount int) DurabilityChange {
	return reduceDurability(&a.Durability, amount)
}

// Repair restores durability, clamping at the weapon's maximum.
func (a *AttackItem) Repair(amount int) DurabilityChange {
	return repairDurability(&a.Durability, a.MaxDurability, amount)
}

// DefenceItem is an equippable piece of armor.
type DefenceItem struct {
	InternalName  string      `json:"internal_name"`
	DisplayName   string      `json:"display_name"`
	BaseDefense   int         `json:"base_defense"`
	DefenseType   DefenseType `json:"defense_type"`
	Durability    int         `json:"durability"`
	MaxDurability int         `json:"max_durability"`
	Modifiers     []Modifier  `json:"-"`
}

// NewDefenceItem creates armor with full durability.
func NewDefenceItem(internalName, displayName string, baseDefense int, defenseType DefenseType, durability int) *DefenceItem {
	return &DefenceItem{
		InternalName:  internalName,
		DisplayName:   displayName,
		BaseDefense:   baseDefense,
		DefenseType:   defenseType,
		Durability:    durability,
		MaxDurability: durability,
	}
}

func (d *DefenceItem) Name() string    { return d.InternalName }
func (d *DefenceItem) Display() string { return d.DisplayName }

// Broken reports whether the armor is worn out.
func (d *DefenceItem) Broken() bool { return d.Durability <= 0 }

// AddModifier appends to the armor's pipeline.
func (d *DefenceItem) AddModifier(m Modifier) {
	d.Modifiers = append(d.Modifiers, m)
}

// TotalDefense runs base defense through the modifier pipeline, floored at
// 0. Defense has no critical concept and no durability side effect here;
// armor wears only through explicit ReduceDurability calls, which the
// encounter engine issues once per hit received.
func (d *DefenceItem) TotalDefense() int {
	defense := applyModifiers(d.BaseDefense, false, d.Modifiers)
	if defense < 0 {
		defense = 0
	}
	return defense
}

// ReduceDurability wears the armor, clamping at 0.
func (d *DefenceItem) ReduceDurability(amount int) DurabilityChange {
	return reduceDurability(&d.Durability, amount)
}

// Repair restores durability, clamping at the armor's maximum.
func (d *DefenceItem) Repair(amount int) DurabilityChange {
	return repairDurability(&d.Durability, d.MaxDurability, amount)
}

// HealthPotion is a single-use consumable. Consuming it transfers ownership
// to the consumption event; it never sits in a slot.
type HealthPotion struct {
	InternalName string `json:"internal_name"`
	DisplayName  string `json:"display_name"`
	HealAmount   int    `json:"heal_amount"`
}

// NewHealthPotion creates a potion.
func NewHealthPotion(internalName, displayName string, healAmount int) *HealthPotion {
	return &HealthPotion{
		InternalName: internalName,
		DisplayName:  displayName,
		HealAmount:   healAmount,
	}
}

func (p *HealthPotion) Name() string    { return p.InternalName }
func (p *HealthPotion) Display() string { return p.DisplayName }

func reduceDurability(current *int, amount int) DurabilityChange {
	if amount < 0 {
		amount = 0
	}
	wasBroken := *current <= 0
	*current -= amount
	if *current < 0 {
		*current = 0
	}
	return DurabilityChange{
		Durability: *current,
		Broke:      !wasBroken && *current == 0,
	}
}

func repairDurability(current *int, max, amount int) DurabilityChange {
	if amount < 0 {
		amount = 0
	}
	*current += amount
	if *current > max {
		*current = max
	}
	return DurabilityChange{Durability: *current}
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
