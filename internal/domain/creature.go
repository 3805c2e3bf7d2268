package domain

import (
	"log/slog"
	"math/rand"
)

// PickAction says what Pick did with an item.
type PickAction string

const (
	PickEquippedWeapon PickAction = "equipped_weapon"
	PickEquippedArmor  PickAction = "equipped_armor"
	PickConsumed       PickAction = "consumed"
)

// AttackResult is the outcome of a creature's attack roll.
type AttackResult struct {
	Damage   int  `json:"damage"`
	Critical bool `json:"critical"`

	// WeaponRoll is set when an unbroken weapon contributed to the attack.
	WeaponRoll *DamageRoll `json:"weapon_roll,omitempty"`
}

// HitResult is the outcome of delivering a hit to a creature.
type HitResult struct {
	DamageTaken int `json:"damage_taken"`
	Remaining   int `json:"remaining"`

	// Died is true exactly once: on the hit that brings life to 0.
	Died bool `json:"died"`
}

// PickResult is the outcome of picking an item up.
type PickResult struct {
	Action   PickAction `json:"action"`
	Replaced Item       `json:"replaced,omitempty"`
	Healed   int        `json:"healed,omitempty"`
}

// Creature is a combatant entity. One weapon slot, one armor slot, an
// ordered inventory, and a creature-level damage modifier pipeline.
type Creature struct {
	Entity

	LifePoints  int `json:"life_points"`
	MaxHealth   int `json:"max_health"`
	BaseDamage  int `json:"base_damage"`
	BaseDefense int `json:"base_defense"`

	// Initiative orders the creature in the turn rotation, highest first.
	// Constructors default it to BaseDamage.
	Initiative int `json:"initiative"`

	Weapon *AttackItem  `json:"weapon,omitempty"`
	Armor  *DefenceItem `json:"armor,omitempty"`

	Inventory       []Item     `json:"-"`
	DamageModifiers []Modifier `json:"-"`

	dead bool
}

// NewCreature creates a living creature at full health. The interaction
// execute hook is installed here, so a creature can never be constructed
// without one.
func NewCreature(internalName, displayName string, pos Position, maxHealth, baseDamage, baseDefense int) (*Creature, error) {
	if maxHealth <= 0 {
		return nil, ErrInvalidInput
	}

	c := &Creature{
		LifePoints:  maxHealth,
		MaxHealth:   maxHealth,
		BaseDamage:  baseDamage,
		BaseDefense: baseDefense,
		Initiative:  baseDamage,
	}

	base, err := newEntity(internalName, displayName, pos, func(e *Entity) error {
		slog.Debug("creature acknowledges the interaction",
			"creature", e.InternalName, "life", c.LifePoints)
		return nil
	})
	if err != nil {
		return nil, err
	}
	base.Removable = true
	c.Entity = base

	return c, nil
}

// Alive reports whether the creature can still act.
func (c *Creature) Alive() bool { return !c.dead }

// Dead reports the terminal state. A dead creature never comes back.
func (c *Creature) Dead() bool { return c.dead }

// Attack produces the damage value for one attack: base damage plus the
// equipped weapon's own roll (a broken weapon is non-functional and is
// skipped), run through the creature's modifier pipeline with the critical
// flag off, floored at 1. The only side effect is the weapon's durability
// decrement inside its own calculation.
func (c *Creature) Attack(rng *rand.Rand) AttackResult {
	damage := c.BaseDamage

	var weaponRoll *DamageRoll
	if c.Weapon != nil && !c.Weapon.Broken() {
		roll := c.Weapon.CalculateDamage(rng)
		weaponRoll = &roll
		damage += roll.Damage
	}

	damage = applyModifiers(damage, false, c.DamageModifiers)
	if damage < 1 {
		damage = 1
	}

	result := AttackResult{Damage: damage}
	if weaponRoll != nil {
		result.Critical = weaponRoll.Critical
		result.WeaponRoll = weaponRoll
	}
	return result
}

// EffectiveDefense is base defense plus the armor's total, when equipped.
// Broken armor stays in its slot but protects nothing until repaired.
func (c *Creature) EffectiveDefense() int {
	defense := c.BaseDefense
	if c.Armor != nil && !c.Armor.Broken() {
		defense += c.Armor.TotalDefense()
	}
	return defense
}

// ReceiveHit applies an incoming hit. Damage taken is always at least 1
// regardless of defense; life clamps at 0. Died is reported exactly once,
// on the hit that crosses to 0.
func (c *Creature) ReceiveHit(hit int) HitResult {
	damageTaken := hit - c.EffectiveDefense()
	if damageTaken < 1 {
		damageTaken = 1
	}

	c.LifePoints -= damageTaken
	if c.LifePoints < 0 {
		c.LifePoints = 0
	}

	died := false
	if c.LifePoints == 0 && !c.dead {
		c.dead = true
		died = true
	}

	return HitResult{
		DamageTaken: damageTaken,
		Remaining:   c.LifePoints,
		Died:        died,
	}
}

// Pick dispatches on item capability: weapons and armor equip, silently
// replacing and discarding whatever held the slot; potions are consumed on
// the spot. Anything else is rejected with ErrUnusableItem and no state
// change.
func (c *Creature) Pick(item Item) (PickResult, error) {
	switch it := item.(type) {
	case *AttackItem:
		replaced := c.Weapon
		c.Weapon = it
		return PickResult{Action: PickEquippedWeapon, Replaced: itemOrNil(replaced)}, nil
	case *DefenceItem:
		replaced := c.Armor
		c.Armor = it
		return PickResult{Action: PickEquippedArmor, Replaced: itemOrNil(replaced)}, nil
	case *HealthPotion:
		healed := c.Consume(it)
		return PickResult{Action: PickConsumed, Healed: healed}, nil
	default:
		return PickResult{}, ErrUnusableItem
	}
}

// Consume drinks a potion, clamping life at max health. Returns the life
// actually restored.
func (c *Creature) Consume(potion *HealthPotion) int {
	before := c.LifePoints
	c.LifePoints += potion.HealAmount
	if c.LifePoints > c.MaxHealth {
		c.LifePoints = c.MaxHealth
	}
	return c.LifePoints - before
}

// AddDamageModifier appends to the creature's pipeline. Order of addition
// is order of application at the next Attack.
func (c *Creature) AddDamageModifier(m Modifier) {
	c.DamageModifiers = append(c.DamageModifiers, m)
}

// itemOrNil avoids storing a typed nil inside the Item interface value.
func itemOrNil[T interface {
	Item
	comparable
}](v T) Item {
	var zero T
	if v == zero {
		return nil
	}
	return v
}
