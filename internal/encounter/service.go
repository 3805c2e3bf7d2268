package encounter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GridClash_Go/internal/config"
	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/item"
	"github.com/osse101/GridClash_Go/internal/logger"
	"github.com/osse101/GridClash_Go/internal/metrics"
	"github.com/osse101/GridClash_Go/internal/naming"
	"github.com/osse101/GridClash_Go/internal/worker"
	"github.com/osse101/GridClash_Go/internal/world"
)

// CreatureSpec describes one combatant to place at encounter creation.
type CreatureSpec struct {
	InternalName string          `json:"internal_name" validate:"required"`
	DisplayName  string          `json:"display_name"`
	Pos          domain.Position `json:"pos"`
	MaxHealth    int             `json:"max_health" validate:"gt=0"`
	BaseDamage   int             `json:"base_damage" validate:"gte=0"`
	BaseDefense  int             `json:"base_defense" validate:"gte=0"`

	// Initiative overrides the default (base damage) when > 0.
	Initiative int `json:"initiative"`

	// Weapon and Armor name item definitions to spawn pre-equipped, by
	// internal name or display name.
	Weapon string `json:"weapon"`
	Armor  string `json:"armor"`
}

// ObjectSpec describes one loose item or obstacle to place.
type ObjectSpec struct {
	// Item names an item definition, by internal name or display name;
	// empty means a plain obstacle.
	Item         string          `json:"item"`
	InternalName string          `json:"internal_name"`
	Pos          domain.Position `json:"pos"`
}

// CreateRequest describes a new encounter.
type CreateRequest struct {
	Creatures []CreatureSpec `json:"creatures" validate:"required,min=1,dive"`
	Objects   []ObjectSpec   `json:"objects" validate:"dive"`

	// Seed pins the random source for reproducible encounters; zero means
	// seed from the clock.
	Seed int64 `json:"seed"`
}

// CreatureState is a read-side snapshot of one combatant.
type CreatureState struct {
	ID           string          `json:"id"`
	InternalName string          `json:"internal_name"`
	DisplayName  string          `json:"display_name"`
	Pos          domain.Position `json:"pos"`
	LifePoints   int             `json:"life_points"`
	MaxHealth    int             `json:"max_health"`
	Initiative   int             `json:"initiative"`
	Alive        bool            `json:"alive"`
	Weapon       string          `json:"weapon,omitempty"`
	Armor        string          `json:"armor,omitempty"`
}

// ObjectState is a read-side snapshot of one world object.
type ObjectState struct {
	ID           string          `json:"id"`
	InternalName string          `json:"internal_name"`
	DisplayName  string          `json:"display_name"`
	Pos          domain.Position `json:"pos"`
	Lootable     bool            `json:"lootable"`
}

// State is a read-side snapshot of the whole encounter.
type State struct {
	ID        string          `json:"id"`
	Round     int             `json:"round"`
	Current   string          `json:"current,omitempty"`
	Completed bool            `json:"completed"`
	Creatures []CreatureState `json:"creatures"`
	Objects   []ObjectState   `json:"objects"`
}

// Service defines the interface for encounter operations
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*State, error)
	Get(ctx context.Context, id uuid.UUID) (*State, error)
	Attack(ctx context.Context, id, attackerID, targetID uuid.UUID) (*AttackOutcome, error)
	Pickup(ctx context.Context, id, actorID uuid.UUID, pos domain.Position) (*PickupOutcome, error)
	Move(ctx context.Context, id, actorID uuid.UUID, pos domain.Position) (*State, error)
	Interact(ctx context.Context, id, actorID, objectID uuid.UUID) error
	AdvanceTurn(ctx context.Context, id uuid.UUID) (*TurnOutcome, error)
	TurnOrder(ctx context.Context, id uuid.UUID) ([]CreatureState, error)
	SortByInitiative(ctx context.Context, id uuid.UUID) ([]CreatureState, error)
	Abandon(ctx context.Context, id uuid.UUID) error
	Stop()
}

// instance pairs an engine with the serializer that orders its actions.
type instance struct {
	engine     *Engine
	serializer *worker.Serializer
	lastActive time.Time
}

type service struct {
	cfg   *config.Config
	bus   event.Bus
	items *item.Registry
	names naming.Resolver

	mu        sync.RWMutex
	instances map[uuid.UUID]*instance

	janitorQuit chan struct{}
	janitorDone chan struct{}
}

// NewService creates the encounter registry and starts its eviction
// janitor.
func NewService(cfg *config.Config, bus event.Bus, items *item.Registry, names naming.Resolver) Service {
	s := &service{
		cfg:         cfg,
		bus:         bus,
		items:       items,
		names:       names,
		instances:   make(map[uuid.UUID]*instance),
		janitorQuit: make(chan struct{}),
		janitorDone: make(chan struct{}),
	}
	s.registerItemNames()
	go s.janitor()
	return s
}

// registerItemNames seeds the resolver with every item definition's display
// name, so requests may name items either way from the first encounter on.
func (s *service) registerItemNames() {
	names, err := s.items.Names()
	if err != nil {
		logger.Warn(LogMsgItemNamesUnavailable, "error", err)
		return
	}
	for _, name := range names {
		def, err := s.items.Definition(name)
		if err != nil {
			continue
		}
		s.names.Register(def.InternalName, def.DisplayName)
	}
}

// itemName resolves a request-supplied item name to an internal name. An
// unknown name passes through untouched and fails at spawn time.
func (s *service) itemName(name string) string {
	if internal, ok := s.names.ResolvePublicName(name); ok {
		return internal
	}
	return name
}

// Create builds a world from the request, places every creature and object,
// and registers the running encounter.
func (s *service) Create(ctx context.Context, req CreateRequest) (*State, error) {
	if len(req.Creatures) == 0 {
		return nil, errors.New(ErrMsgNoCreatures)
	}

	id := uuid.New()
	log := logger.ForEncounter(ctx, id)

	w := world.New(s.cfg.WorldMaxX, s.cfg.WorldMaxY, log)

	for _, spec := range req.Creatures {
		c, err := s.buildCreature(spec)
		if err != nil {
			return nil, err
		}
		if !w.AddCreature(c) {
			return nil, fmt.Errorf(ErrMsgUnplacedEntity, spec.InternalName, spec.Pos.String())
		}
		s.names.Register(c.InternalName, c.DisplayName)
	}

	for _, spec := range req.Objects {
		o, err := s.buildObject(spec)
		if err != nil {
			return nil, err
		}
		if !w.AddObject(o) {
			return nil, fmt.Errorf(ErrMsgUnplacedEntity, o.InternalName, spec.Pos.String())
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := NewEngine(id, w, s.bus, s.cfg.Difficulty, seed, log)
	engine.SortByInitiative()

	serializer := worker.NewSerializer(worker.DefaultQueueSize)
	serializer.Start()

	s.mu.Lock()
	s.instances[id] = &instance{
		engine:     engine,
		serializer: serializer,
		lastActive: time.Now(),
	}
	s.mu.Unlock()

	metrics.EncountersActive.Inc()
	log.Info(LogMsgEncounterCreated,
		"creatures", len(req.Creatures), "objects", len(req.Objects), "seed", seed)

	return s.snapshot(engine), nil
}

// buildCreature turns a spec into a placed creature with any requested
// starting equipment.
func (s *service) buildCreature(spec CreatureSpec) (*domain.Creature, error) {
	display := spec.DisplayName
	if display == "" {
		display = s.names.DisplayName(spec.InternalName)
	}

	c, err := domain.NewCreature(spec.InternalName, display, spec.Pos,
		spec.MaxHealth, spec.BaseDamage, spec.BaseDefense)
	if err != nil {
		return nil, fmt.Errorf("building creature %q: %w", spec.InternalName, err)
	}
	if spec.Initiative > 0 {
		c.Initiative = spec.Initiative
	}

	if spec.Weapon != "" {
		spawned, err := s.items.Spawn(s.itemName(spec.Weapon))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgSpawnItemFailed, spec.Weapon, err)
		}
		weapon, ok := spawned.(*domain.AttackItem)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a weapon", domain.ErrUnusableItem, spec.Weapon)
		}
		c.Weapon = weapon
	}

	if spec.Armor != "" {
		spawned, err := s.items.Spawn(s.itemName(spec.Armor))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgSpawnItemFailed, spec.Armor, err)
		}
		armor, ok := spawned.(*domain.DefenceItem)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not armor", domain.ErrUnusableItem, spec.Armor)
		}
		c.Armor = armor
	}

	return c, nil
}

// buildObject turns a spec into a loose item object or an obstacle.
func (s *service) buildObject(spec ObjectSpec) (*domain.WorldObject, error) {
	if spec.Item == "" {
		name := spec.InternalName
		if name == "" {
			name = "obstacle"
		}
		return domain.NewObstacle(name, s.names.DisplayName(name), spec.Pos)
	}

	spawned, err := s.items.Spawn(s.itemName(spec.Item))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSpawnItemFailed, spec.Item, err)
	}
	s.names.Register(spawned.Name(), spawned.Display())
	return domain.NewItemObject(spawned, spec.Pos)
}

// Get returns a snapshot of the encounter.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var state *State
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		state = s.snapshot(inst.engine)
		return nil
	})
	return state, err
}

// Attack resolves an attack action.
func (s *service) Attack(ctx context.Context, id, attackerID, targetID uuid.UUID) (*AttackOutcome, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var outcome *AttackOutcome
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		var runErr error
		outcome, runErr = inst.engine.ExecuteAttack(ctx, attackerID, targetID)
		return runErr
	})
	return outcome, err
}

// Pickup resolves a pickup action.
func (s *service) Pickup(ctx context.Context, id, actorID uuid.UUID, pos domain.Position) (*PickupOutcome, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var outcome *PickupOutcome
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		var runErr error
		outcome, runErr = inst.engine.ExecutePickup(ctx, actorID, pos)
		return runErr
	})
	return outcome, err
}

// Move resolves a move action and returns the refreshed snapshot.
func (s *service) Move(ctx context.Context, id, actorID uuid.UUID, pos domain.Position) (*State, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var state *State
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		if runErr := inst.engine.ExecuteMove(ctx, actorID, pos); runErr != nil {
			return runErr
		}
		state = s.snapshot(inst.engine)
		return nil
	})
	return state, err
}

// Interact runs an object interaction.
func (s *service) Interact(ctx context.Context, id, actorID, objectID uuid.UUID) error {
	inst, err := s.instance(id)
	if err != nil {
		return err
	}

	return inst.serializer.Run(ctx, func(ctx context.Context) error {
		return inst.engine.Interact(ctx, actorID, objectID)
	})
}

// AdvanceTurn rotates to the next creature.
func (s *service) AdvanceTurn(ctx context.Context, id uuid.UUID) (*TurnOutcome, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var outcome *TurnOutcome
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		var runErr error
		outcome, runErr = inst.engine.AdvanceTurn(ctx)
		return runErr
	})
	return outcome, err
}

// TurnOrder returns the rotation starting at the current creature.
func (s *service) TurnOrder(ctx context.Context, id uuid.UUID) ([]CreatureState, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var order []CreatureState
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		for _, c := range inst.engine.TurnOrder() {
			order = append(order, s.creatureState(c))
		}
		return nil
	})
	return order, err
}

// SortByInitiative reorders the rotation and returns it.
func (s *service) SortByInitiative(ctx context.Context, id uuid.UUID) ([]CreatureState, error) {
	inst, err := s.instance(id)
	if err != nil {
		return nil, err
	}

	var order []CreatureState
	err = inst.serializer.Run(ctx, func(ctx context.Context) error {
		inst.engine.SortByInitiative()
		for _, c := range inst.engine.TurnOrder() {
			order = append(order, s.creatureState(c))
		}
		return nil
	})
	return order, err
}

// Abandon evicts an encounter before its natural completion.
func (s *service) Abandon(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	inst, ok := s.instances[id]
	if ok {
		delete(s.instances, id)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrEncounterNotFound
	}

	inst.serializer.Stop()
	s.notifyEvicted(ctx, id, "abandoned")
	logger.ForEncounter(ctx, id).Info(LogMsgEncounterEvicted, "reason", "abandoned")
	return nil
}

// notifyEvicted tells the read side the encounter is gone so per-encounter
// records do not outlive it. Also balances the active-encounters gauge.
func (s *service) notifyEvicted(ctx context.Context, id uuid.UUID, reason string) {
	metrics.EncountersActive.Dec()
	if err := s.bus.Publish(ctx, event.NewEncounterEvictedEvent(id, reason)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEvictNoticeFailed,
			"encounter_id", id.String(), "error", err)
	}
}

// Stop evicts everything and stops the janitor. Called on shutdown.
func (s *service) Stop() {
	close(s.janitorQuit)
	<-s.janitorDone

	s.mu.Lock()
	instances := s.instances
	s.instances = make(map[uuid.UUID]*instance)
	s.mu.Unlock()

	for id, inst := range instances {
		inst.serializer.Stop()
		s.notifyEvicted(context.Background(), id, "shutdown")
	}
}

// janitor evicts encounters idle past the configured TTL.
func (s *service) janitor() {
	defer close(s.janitorDone)

	ttl := time.Duration(s.cfg.EncounterTTL) * time.Second
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.evictIdle(now, ttl)
		case <-s.janitorQuit:
			return
		}
	}
}

func (s *service) evictIdle(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	evicted := make(map[uuid.UUID]*instance)
	for id, inst := range s.instances {
		if now.Sub(inst.lastActive) > ttl {
			delete(s.instances, id)
			evicted[id] = inst
			logger.Info(LogMsgEncounterEvicted, "encounter_id", id.String(), "reason", "idle")
		}
	}
	s.mu.Unlock()

	for id, inst := range evicted {
		inst.serializer.Stop()
		s.notifyEvicted(context.Background(), id, "idle")
	}
}

// instance looks up a live encounter and refreshes its activity clock.
func (s *service) instance(id uuid.UUID) (*instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return nil, domain.ErrEncounterNotFound
	}
	inst.lastActive = time.Now()
	return inst, nil
}

// snapshot is only safe to call from inside the encounter's serializer.
func (s *service) snapshot(engine *Engine) *State {
	state := &State{
		ID:        engine.ID().String(),
		Round:     engine.Round(),
		Completed: engine.Completed(),
		Creatures: []CreatureState{},
		Objects:   []ObjectState{},
	}

	if current, err := engine.CurrentCreature(); err == nil {
		state.Current = current.ID.String()
	}

	for _, c := range engine.World().Creatures() {
		state.Creatures = append(state.Creatures, s.creatureState(c))
	}
	for _, o := range engine.World().Objects() {
		state.Objects = append(state.Objects, ObjectState{
			ID:           o.ID.String(),
			InternalName: o.InternalName,
			DisplayName:  s.names.DisplayName(o.InternalName),
			Pos:          o.Pos,
			Lootable:     o.Lootable,
		})
	}
	return state
}

func (s *service) creatureState(c *domain.Creature) CreatureState {
	state := CreatureState{
		ID:           c.ID.String(),
		InternalName: c.InternalName,
		DisplayName:  s.names.DisplayName(c.InternalName),
		Pos:          c.Pos,
		LifePoints:   c.LifePoints,
		MaxHealth:    c.MaxHealth,
		Initiative:   c.Initiative,
		Alive:        c.Alive(),
	}
	if c.Weapon != nil {
		state.Weapon = c.Weapon.Name()
	}
	if c.Armor != nil {
		state.Armor = c.Armor.Name()
	}
	return state
}
