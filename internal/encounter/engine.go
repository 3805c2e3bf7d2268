package encounter

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/logger"
	"github.com/osse101/GridClash_Go/internal/turn"
	"github.com/osse101/GridClash_Go/internal/world"
)

// AttackOutcome reports one resolved attack action.
type AttackOutcome struct {
	Attack     domain.AttackResult `json:"attack"`
	Hit        domain.HitResult    `json:"hit"`
	TargetID   string              `json:"target_id"`
	TargetDied bool                `json:"target_died"`
	Completed  bool                `json:"completed"`
}

// PickupOutcome reports one resolved pickup action.
type PickupOutcome struct {
	Item   string            `json:"item"`
	Result domain.PickResult `json:"result"`
}

// TurnOutcome reports one turn advance.
type TurnOutcome struct {
	CreatureID     string `json:"creature_id"`
	Creature       string `json:"creature"`
	Round          int    `json:"round"`
	RoundCompleted bool   `json:"round_completed"`
}

// Engine resolves actions for one encounter. It is pure logic over the
// world, the turn rotation and a seeded random source; callers serialize
// access and the bus carries everything observable out.
type Engine struct {
	id         uuid.UUID
	world      *world.World
	turns      *turn.Manager
	bus        event.Bus
	rng        *rand.Rand
	difficulty domain.Difficulty
	completed  bool
	log        *slog.Logger
}

// NewEngine creates an engine over an already-populated world. Creatures
// join the rotation in world order; each gets the encounter's difficulty
// scaling appended to its damage pipeline.
func NewEngine(id uuid.UUID, w *world.World, bus event.Bus, difficulty domain.Difficulty, seed int64, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}

	turns := turn.NewManager()
	for _, c := range w.Creatures() {
		c.AddDamageModifier(domain.DifficultyModifier{Difficulty: difficulty})
		turns.AddCreature(c)
	}

	//nolint:gosec // G404: math/rand is acceptable for game mechanics, not for cryptographic purposes
	return &Engine{
		id:         id,
		world:      w,
		turns:      turns,
		bus:        bus,
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: difficulty,
		log:        log,
	}
}

// ID returns the encounter's identifier.
func (e *Engine) ID() uuid.UUID { return e.id }

// Completed reports whether the encounter has ended.
func (e *Engine) Completed() bool { return e.completed }

// Round returns the current round number.
func (e *Engine) Round() int { return e.turns.Round() }

// World exposes the engine's grid for read-side snapshots.
func (e *Engine) World() *world.World { return e.world }

// CurrentCreature returns the creature whose turn it is.
func (e *Engine) CurrentCreature() (*domain.Creature, error) {
	if e.completed {
		return nil, domain.ErrEncounterOver
	}
	return e.turns.CurrentCreature()
}

// TurnOrder returns the rotation starting at the current creature.
func (e *Engine) TurnOrder() []*domain.Creature { return e.turns.TurnOrder() }

// SortByInitiative reorders the rotation by descending initiative and
// resets the current slot to the front.
func (e *Engine) SortByInitiative() { e.turns.SortByInitiative() }

// ExecuteAttack resolves one attack by the current creature. The target
// must be alive and within the attacker's reach; armor on the target wears
// by one point per hit received.
func (e *Engine) ExecuteAttack(ctx context.Context, attackerID, targetID uuid.UUID) (*AttackOutcome, error) {
	if e.completed {
		return nil, domain.ErrEncounterOver
	}

	attacker, err := e.world.CreatureByID(attackerID)
	if err != nil {
		return nil, err
	}
	target, err := e.world.CreatureByID(targetID)
	if err != nil {
		return nil, err
	}

	if err := e.requireTurn(attacker); err != nil {
		return nil, err
	}
	if target.Dead() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCreatureDead, target.InternalName)
	}

	reach := UnarmedRange
	if attacker.Weapon != nil && !attacker.Weapon.Broken() {
		reach = attacker.Weapon.Range
	}
	if attacker.Pos.Distance(target.Pos) > reach {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrOutOfRange,
			attacker.Pos.String(), target.Pos.String())
	}

	attack := attacker.Attack(e.rng)
	if attack.WeaponRoll != nil {
		e.publish(ctx, event.NewDurabilityChangedEvent(e.id, attacker.Weapon, attack.WeaponRoll.Durability))
		if attack.WeaponRoll.Broke {
			e.publish(ctx, event.NewItemBrokenEvent(e.id, attacker.Weapon, attacker.ID.String()))
		}
	}

	hit := target.ReceiveHit(attack.Damage)
	e.wearArmor(ctx, target)
	e.publish(ctx, event.NewDamageTakenEvent(e.id, attacker, target, hit, attack.Critical))

	e.log.Debug(LogMsgAttackResolved,
		"attacker", attacker.InternalName, "target", target.InternalName,
		"damage", hit.DamageTaken, "critical", attack.Critical, "remaining", hit.Remaining)

	if hit.Died {
		e.handleDeath(ctx, target, attacker.ID.String())
	}

	return &AttackOutcome{
		Attack:     attack,
		Hit:        hit,
		TargetID:   target.ID.String(),
		TargetDied: hit.Died,
		Completed:  e.completed,
	}, nil
}

// wearArmor applies the per-hit durability cost to the target's armor.
func (e *Engine) wearArmor(ctx context.Context, target *domain.Creature) {
	if target.Armor == nil || target.Armor.Broken() {
		return
	}
	change := target.Armor.ReduceDurability(ArmorWearPerHit)
	e.publish(ctx, event.NewDurabilityChangedEvent(e.id, target.Armor, change.Durability))
	if change.Broke {
		e.publish(ctx, event.NewItemBrokenEvent(e.id, target.Armor, target.ID.String()))
	}
}

// handleDeath prunes the creature from the rotation and turns the corpse
// into a loot source: equipped gear drops into its inventory, broken or not.
// The creature stays in the world's collection for the encounter record.
func (e *Engine) handleDeath(ctx context.Context, creature *domain.Creature, killerID string) {
	e.turns.RemoveCreature(creature)
	creature.Lootable = true

	if creature.Weapon != nil {
		creature.Inventory = append(creature.Inventory, creature.Weapon)
		creature.Weapon = nil
	}
	if creature.Armor != nil {
		creature.Inventory = append(creature.Inventory, creature.Armor)
		creature.Armor = nil
	}

	e.publish(ctx, event.NewCreatureDiedEvent(e.id, creature, killerID))
	e.log.Info(LogMsgCreatureDied, "creature", creature.InternalName, "killer_id", killerID)

	e.checkCompletion(ctx)
}

// checkCompletion ends the encounter once at most one creature remains in
// the rotation.
func (e *Engine) checkCompletion(ctx context.Context) {
	if e.completed || e.turns.Len() > 1 {
		return
	}

	e.completed = true
	survivors := make([]string, 0, 1)
	for _, c := range e.turns.TurnOrder() {
		survivors = append(survivors, c.ID.String())
	}

	e.publish(ctx, event.NewEncounterCompletedEvent(e.id, survivors, e.turns.Round()))
	e.log.Info(LogMsgEncounterOver, "survivors", len(survivors), "rounds", e.turns.Round())
}

// ExecutePickup picks up the first lootable object at pos for the current
// creature. Weapons and armor equip; potions are consumed on the spot and
// never enter a slot. The object leaves the grid either way.
func (e *Engine) ExecutePickup(ctx context.Context, actorID uuid.UUID, pos domain.Position) (*PickupOutcome, error) {
	if e.completed {
		return nil, domain.ErrEncounterOver
	}

	actor, err := e.world.CreatureByID(actorID)
	if err != nil {
		return nil, err
	}
	if err := e.requireTurn(actor); err != nil {
		return nil, err
	}
	if actor.Pos.Distance(pos) > MoveRange {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrOutOfRange, actor.Pos.String(), pos.String())
	}

	item, claim := e.lootAt(pos)
	if item == nil {
		return nil, fmt.Errorf("%w: nothing lootable at %s", domain.ErrItemNotFound, pos.String())
	}

	result, err := actor.Pick(item)
	if err != nil {
		return nil, fmt.Errorf("picking up %s: %w", item.Name(), err)
	}

	claim()

	switch result.Action {
	case domain.PickEquippedWeapon:
		e.publish(ctx, event.NewItemEquippedEvent(e.id, actor, item, "weapon", result.Replaced))
	case domain.PickEquippedArmor:
		e.publish(ctx, event.NewItemEquippedEvent(e.id, actor, item, "armor", result.Replaced))
	case domain.PickConsumed:
		potion, ok := item.(*domain.HealthPotion)
		if ok {
			e.publish(ctx, event.NewPotionConsumedEvent(e.id, actor, potion, result.Healed))
		}
	}

	e.log.Debug(LogMsgItemPickedUp,
		"creature", actor.InternalName, "item", item.Name(), "action", string(result.Action))

	return &PickupOutcome{Item: item.Name(), Result: result}, nil
}

// lootAt finds the first lootable item at pos, ground objects before corpse
// inventories. The claim function removes the item from its source and must
// only run after a successful pick, so a failed pick leaves the loot where
// it was.
func (e *Engine) lootAt(pos domain.Position) (domain.Item, func()) {
	if obj := e.lootableAt(pos); obj != nil {
		return obj.Item, func() { e.world.RemoveObject(obj) }
	}

	corpse := e.lootableCorpseAt(pos)
	if corpse == nil {
		return nil, nil
	}
	item := corpse.Inventory[0]
	return item, func() {
		corpse.Inventory = corpse.Inventory[1:]
		if len(corpse.Inventory) == 0 {
			corpse.Lootable = false
		}
	}
}

// lootableAt returns the first lootable item-carrying object at pos.
func (e *Engine) lootableAt(pos domain.Position) *domain.WorldObject {
	for _, occupant := range e.world.ObjectsAt(pos) {
		if !occupant.Lootable {
			continue
		}
		obj, err := e.world.ObjectByID(occupant.ID)
		if err != nil || obj.Item == nil {
			continue
		}
		return obj
	}
	return nil
}

// lootableCorpseAt returns a dead creature at pos still carrying gear.
func (e *Engine) lootableCorpseAt(pos domain.Position) *domain.Creature {
	for _, occupant := range e.world.ObjectsAt(pos) {
		if !occupant.Lootable {
			continue
		}
		c, err := e.world.CreatureByID(occupant.ID)
		if err != nil || c.Alive() || len(c.Inventory) == 0 {
			continue
		}
		return c
	}
	return nil
}

// ExecuteMove steps the current creature one cell in any direction.
func (e *Engine) ExecuteMove(ctx context.Context, actorID uuid.UUID, pos domain.Position) error {
	if e.completed {
		return domain.ErrEncounterOver
	}

	actor, err := e.world.CreatureByID(actorID)
	if err != nil {
		return err
	}
	if err := e.requireTurn(actor); err != nil {
		return err
	}
	if actor.Pos.Distance(pos) > MoveRange {
		return fmt.Errorf("%w: %s to %s", domain.ErrOutOfRange, actor.Pos.String(), pos.String())
	}

	if err := e.world.MoveCreature(actor, pos); err != nil {
		return err
	}

	e.log.Debug(LogMsgCreatureMoved, "creature", actor.InternalName, "pos", pos.String())
	return nil
}

// AdvanceTurn rotates to the next creature. Wrapping to the front of the
// rotation completes the round.
func (e *Engine) AdvanceTurn(ctx context.Context) (*TurnOutcome, error) {
	if e.completed {
		return nil, domain.ErrEncounterOver
	}

	before := e.turns.Round()
	if err := e.turns.NextTurn(); err != nil {
		return nil, err
	}
	after := e.turns.Round()

	if after > before {
		e.publish(ctx, event.NewRoundCompletedEvent(e.id, before))
	}

	current, err := e.turns.CurrentCreature()
	if err != nil {
		return nil, err
	}
	e.publish(ctx, event.NewTurnAdvancedEvent(e.id, current, after))

	e.log.Debug(LogMsgTurnAdvanced, "creature", current.InternalName, "round", after)

	return &TurnOutcome{
		CreatureID:     current.ID.String(),
		Creature:       current.InternalName,
		Round:          after,
		RoundCompleted: after > before,
	}, nil
}

// Interact runs an object's three-phase interaction on behalf of an actor
// standing next to it.
func (e *Engine) Interact(ctx context.Context, actorID, objectID uuid.UUID) error {
	if e.completed {
		return domain.ErrEncounterOver
	}

	actor, err := e.world.CreatureByID(actorID)
	if err != nil {
		return err
	}
	if actor.Dead() {
		return fmt.Errorf("%w: %s", domain.ErrCreatureDead, actor.InternalName)
	}

	obj, err := e.world.ObjectByID(objectID)
	if err != nil {
		return err
	}
	if actor.Pos.Distance(obj.Pos) > MoveRange {
		return fmt.Errorf("%w: %s to %s", domain.ErrOutOfRange, actor.Pos.String(), obj.Pos.String())
	}

	if err := obj.Interact(); err != nil {
		return fmt.Errorf("interacting with %s: %w", obj.InternalName, err)
	}

	e.publish(ctx, event.NewInteractedEvent(e.id, &obj.Entity, actor.ID.String()))
	return nil
}

// requireTurn rejects actions by anyone other than the current creature.
func (e *Engine) requireTurn(actor *domain.Creature) error {
	if actor.Dead() {
		return fmt.Errorf("%w: %s", domain.ErrCreatureDead, actor.InternalName)
	}
	current, err := e.turns.CurrentCreature()
	if err != nil {
		return err
	}
	if current != actor {
		return fmt.Errorf("%w: %s", domain.ErrNotCurrentTurn, actor.InternalName)
	}
	return nil
}

// publish sends an event, demoting bus failures to a log line. Event sinks
// never affect combat resolution.
func (e *Engine) publish(ctx context.Context, evt event.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err, "type", evt.Type)
	}
}
