package encounter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GridClash_Go/internal/config"
	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/item"
	"github.com/osse101/GridClash_Go/internal/naming"
	"github.com/osse101/GridClash_Go/internal/stats"
)

const serviceItemsJSON = `{
	"version": "1.0",
	"items": [
		{"internal_name": "longsword", "display_name": "Longsword", "kind": "weapon",
		 "base_damage": 5, "range": 1, "damage_type": "PHYSICAL", "critical_chance": 0, "durability": 20},
		{"internal_name": "leather_armor", "display_name": "Leather Armor", "kind": "armor",
		 "base_defense": 2, "defense_type": "PHYSICAL", "durability": 15},
		{"internal_name": "minor_health_potion", "display_name": "Minor Health Potion", "kind": "potion",
		 "heal_amount": 10}
	]
}`

func newTestService(t *testing.T) Service {
	t.Helper()
	return newTestServiceOnBus(t, event.NewMemoryBus())
}

func newTestServiceOnBus(t *testing.T, bus event.Bus) Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(serviceItemsJSON), 0644))
	registry, err := item.NewRegistry(item.NewLoader(""), path, time.Minute)
	require.NoError(t, err)

	cfg := &config.Config{
		WorldMaxX:    10,
		WorldMaxY:    10,
		Difficulty:   domain.DifficultyNormal,
		EncounterTTL: 3600,
	}

	svc := NewService(cfg, bus, registry, naming.NewResolver())
	t.Cleanup(svc.Stop)
	return svc
}

func basicCreateRequest() CreateRequest {
	return CreateRequest{
		Seed: 7,
		Creatures: []CreatureSpec{
			{
				InternalName: "hero", DisplayName: "Hero",
				Pos:       domain.Position{X: 1, Y: 1},
				MaxHealth: 30, BaseDamage: 5, BaseDefense: 1,
				Initiative: 10, Weapon: "longsword", Armor: "leather_armor",
			},
			{
				InternalName: "goblin",
				Pos:          domain.Position{X: 2, Y: 1},
				MaxHealth:    12, BaseDamage: 3,
			},
		},
		Objects: []ObjectSpec{
			{Item: "minor_health_potion", Pos: domain.Position{X: 1, Y: 2}},
			{InternalName: "boulder", Pos: domain.Position{X: 8, Y: 8}},
		},
	}
}

func findCreature(t *testing.T, state *State, internalName string) CreatureState {
	t.Helper()
	for _, c := range state.Creatures {
		if c.InternalName == internalName {
			return c
		}
	}
	t.Fatalf("creature %q not in snapshot", internalName)
	return CreatureState{}
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestCreateSnapshotsTheNewEncounter(t *testing.T) {
	svc := newTestService(t)

	state, err := svc.Create(context.Background(), basicCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, state.Round)
	assert.False(t, state.Completed)
	require.Len(t, state.Creatures, 2)
	require.Len(t, state.Objects, 2)

	hero := findCreature(t, state, "hero")
	assert.Equal(t, "Hero", hero.DisplayName)
	assert.Equal(t, 30, hero.LifePoints)
	assert.Equal(t, "longsword", hero.Weapon)
	assert.Equal(t, "leather_armor", hero.Armor)
	assert.Equal(t, hero.ID, state.Current, "highest initiative acts first")

	goblin := findCreature(t, state, "goblin")
	assert.Equal(t, "Goblin", goblin.DisplayName, "display name falls back to title case")
}

func TestCreateRejectsUnknownEquipment(t *testing.T) {
	svc := newTestService(t)
	req := basicCreateRequest()
	req.Creatures[0].Weapon = "excalibur"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCreateRejectsArmorInWeaponSlot(t *testing.T) {
	svc := newTestService(t)
	req := basicCreateRequest()
	req.Creatures[0].Weapon = "leather_armor"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrUnusableItem)
}

func TestCreateRejectsOutOfBoundsPlacement(t *testing.T) {
	svc := newTestService(t)
	req := basicCreateRequest()
	req.Creatures[1].Pos = domain.Position{X: 99, Y: 1}

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
}

func TestCreateRejectsEmptyRoster(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{})

	assert.Error(t, err)
}

func TestAttackThroughService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)

	encounterID := mustUUID(t, state.ID)
	heroID := mustUUID(t, findCreature(t, state, "hero").ID)
	goblinID := mustUUID(t, findCreature(t, state, "goblin").ID)

	outcome, err := svc.Attack(ctx, encounterID, heroID, goblinID)
	require.NoError(t, err)

	// Base 5 plus longsword 5 against defense 0.
	assert.Equal(t, 10, outcome.Hit.DamageTaken)

	refreshed, err := svc.Get(ctx, encounterID)
	require.NoError(t, err)
	assert.Equal(t, 2, findCreature(t, refreshed, "goblin").LifePoints)
}

func TestFullEncounterThroughService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)

	encounterID := mustUUID(t, state.ID)
	heroID := mustUUID(t, findCreature(t, state, "hero").ID)
	goblinID := mustUUID(t, findCreature(t, state, "goblin").ID)

	// Two sword hits of 10 finish a 12-health goblin.
	_, err = svc.Attack(ctx, encounterID, heroID, goblinID)
	require.NoError(t, err)
	outcome, err := svc.Attack(ctx, encounterID, heroID, goblinID)
	require.NoError(t, err)

	assert.True(t, outcome.TargetDied)
	assert.True(t, outcome.Completed)

	refreshed, err := svc.Get(ctx, encounterID)
	require.NoError(t, err)
	assert.True(t, refreshed.Completed)
	goblin := findCreature(t, refreshed, "goblin")
	assert.False(t, goblin.Alive)
	assert.Zero(t, goblin.LifePoints)

	_, err = svc.AdvanceTurn(ctx, encounterID)
	assert.ErrorIs(t, err, domain.ErrEncounterOver)
}

func TestMoveAndPickupThroughService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)

	encounterID := mustUUID(t, state.ID)
	heroID := mustUUID(t, findCreature(t, state, "hero").ID)
	potionPos := domain.Position{X: 1, Y: 2}

	moved, err := svc.Move(ctx, encounterID, heroID, potionPos)
	require.NoError(t, err)
	assert.Equal(t, potionPos, findCreature(t, moved, "hero").Pos)

	outcome, err := svc.Pickup(ctx, encounterID, heroID, potionPos)
	require.NoError(t, err)
	assert.Equal(t, "minor_health_potion", outcome.Item)
	assert.Equal(t, domain.PickConsumed, outcome.Result.Action)

	refreshed, err := svc.Get(ctx, encounterID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Objects, 1, "only the boulder remains")
}

func TestTurnOrderAndAdvance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)

	encounterID := mustUUID(t, state.ID)

	order, err := svc.TurnOrder(ctx, encounterID)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "hero", order[0].InternalName)
	assert.Equal(t, "goblin", order[1].InternalName)

	outcome, err := svc.AdvanceTurn(ctx, encounterID)
	require.NoError(t, err)
	assert.Equal(t, "goblin", outcome.Creature)
	assert.False(t, outcome.RoundCompleted)

	outcome, err = svc.AdvanceTurn(ctx, encounterID)
	require.NoError(t, err)
	assert.Equal(t, "hero", outcome.Creature)
	assert.True(t, outcome.RoundCompleted)
	assert.Equal(t, 2, outcome.Round)
}

func TestSortByInitiativeThroughService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	req := basicCreateRequest()
	req.Creatures[1].Initiative = 99
	state, err := svc.Create(ctx, req)
	require.NoError(t, err)

	order, err := svc.SortByInitiative(ctx, mustUUID(t, state.ID))
	require.NoError(t, err)
	assert.Equal(t, "goblin", order[0].InternalName)
}

func TestAbandonEvictsEncounter(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)
	encounterID := mustUUID(t, state.ID)

	require.NoError(t, svc.Abandon(ctx, encounterID))

	_, err = svc.Get(ctx, encounterID)
	assert.ErrorIs(t, err, domain.ErrEncounterNotFound)
	assert.ErrorIs(t, svc.Abandon(ctx, encounterID), domain.ErrEncounterNotFound)
}

func TestCreateAcceptsDisplayNamedEquipment(t *testing.T) {
	svc := newTestService(t)
	req := basicCreateRequest()
	req.Creatures[0].Weapon = "Longsword"
	req.Creatures[0].Armor = "Leather Armor"
	req.Objects[0].Item = "Minor Health Potion"

	state, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	hero := findCreature(t, state, "hero")
	assert.Equal(t, "longsword", hero.Weapon)
	assert.Equal(t, "leather_armor", hero.Armor)
}

func TestAbandonReleasesStatsRecord(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	statsService := stats.NewService()
	stats.NewEventHandler(statsService).Register(bus)
	svc := newTestServiceOnBus(t, bus)

	state, err := svc.Create(ctx, basicCreateRequest())
	require.NoError(t, err)
	encounterID := mustUUID(t, state.ID)
	heroID := mustUUID(t, findCreature(t, state, "hero").ID)
	goblinID := mustUUID(t, findCreature(t, state, "goblin").ID)

	_, err = svc.Attack(ctx, encounterID, heroID, goblinID)
	require.NoError(t, err)

	_, err = statsService.GetSummary(ctx, state.ID)
	require.NoError(t, err, "damage should have been recorded")

	require.NoError(t, svc.Abandon(ctx, encounterID))

	_, err = statsService.GetSummary(ctx, state.ID)
	assert.ErrorIs(t, err, domain.ErrEncounterNotFound,
		"abandoning the encounter drops its stats record")
}

func TestUnknownEncounterID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrEncounterNotFound)
}
