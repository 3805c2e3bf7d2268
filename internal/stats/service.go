package stats

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// CreatureStats holds the accumulated combat numbers for one creature within
// an encounter.
type CreatureStats struct {
	CreatureID   string `json:"creature_id"`
	Name         string `json:"name,omitempty"`
	DamageDealt  int    `json:"damage_dealt"`
	DamageTaken  int    `json:"damage_taken"`
	CriticalHits int    `json:"critical_hits"`
	Kills        int    `json:"kills"`
	Died         bool   `json:"died"`
	PotionsDrunk int    `json:"potions_drunk"`
	HealthHealed int    `json:"health_healed"`
	ItemsBroken  int    `json:"items_broken"`
}

// Summary aggregates the recorded stats for one encounter.
type Summary struct {
	EncounterID string          `json:"encounter_id"`
	Completed   bool            `json:"completed"`
	Rounds      int             `json:"rounds"`
	Survivors   []string        `json:"survivors,omitempty"`
	Creatures   []CreatureStats `json:"creatures"`
}

// Service defines the interface for encounter stats operations
type Service interface {
	RecordDamage(ctx context.Context, encounterID, attackerID, targetID string, amount int, critical bool) error
	RecordDeath(ctx context.Context, encounterID, creatureID, killerID string) error
	RecordPotion(ctx context.Context, encounterID, creatureID string, healed int) error
	RecordBrokenItem(ctx context.Context, encounterID, ownerID string) error
	RecordCompletion(ctx context.Context, encounterID string, survivors []string, rounds int) error
	GetSummary(ctx context.Context, encounterID string) (*Summary, error)
	Forget(ctx context.Context, encounterID string)
}

type encounterRecord struct {
	completed bool
	rounds    int
	survivors []string
	creatures map[string]*CreatureStats
}

// service implements the Service interface. Records live in memory for the
// lifetime of the encounter; Forget releases them when the encounter is
// evicted.
type service struct {
	mu         sync.RWMutex
	encounters map[string]*encounterRecord
}

// NewService creates a new stats service
func NewService() Service {
	return &service{
		encounters: make(map[string]*encounterRecord),
	}
}

// RecordDamage records a resolved hit for both sides of the exchange
func (s *service) RecordDamage(ctx context.Context, encounterID, attackerID, targetID string, amount int, critical bool) error {
	log := logger.FromContext(ctx)

	if encounterID == "" {
		return errors.New(ErrMsgEncounterIDRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attacker := s.creatureLocked(encounterID, attackerID)
	attacker.DamageDealt += amount
	if critical {
		attacker.CriticalHits++
	}

	target := s.creatureLocked(encounterID, targetID)
	target.DamageTaken += amount

	log.Debug(LogMsgDamageRecorded, "encounter_id", encounterID, "attacker_id", attackerID, "target_id", targetID, "amount", amount)
	return nil
}

// RecordDeath records a creature death and credits the killer when known
func (s *service) RecordDeath(ctx context.Context, encounterID, creatureID, killerID string) error {
	log := logger.FromContext(ctx)

	if encounterID == "" {
		return errors.New(ErrMsgEncounterIDRequired)
	}
	if creatureID == "" {
		return errors.New(ErrMsgCreatureIDRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creatureLocked(encounterID, creatureID).Died = true
	if killerID != "" {
		s.creatureLocked(encounterID, killerID).Kills++
	}

	log.Debug(LogMsgDeathRecorded, "encounter_id", encounterID, "creature_id", creatureID, "killer_id", killerID)
	return nil
}

// RecordPotion records a potion consumption
func (s *service) RecordPotion(ctx context.Context, encounterID, creatureID string, healed int) error {
	if encounterID == "" {
		return errors.New(ErrMsgEncounterIDRequired)
	}
	if creatureID == "" {
		return errors.New(ErrMsgCreatureIDRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.creatureLocked(encounterID, creatureID)
	c.PotionsDrunk++
	c.HealthHealed += healed
	return nil
}

// RecordBrokenItem records an item wearing down to zero durability
func (s *service) RecordBrokenItem(ctx context.Context, encounterID, ownerID string) error {
	if encounterID == "" {
		return errors.New(ErrMsgEncounterIDRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ownerID != "" {
		s.creatureLocked(encounterID, ownerID).ItemsBroken++
	}
	return nil
}

// RecordCompletion closes the encounter's record
func (s *service) RecordCompletion(ctx context.Context, encounterID string, survivors []string, rounds int) error {
	log := logger.FromContext(ctx)

	if encounterID == "" {
		return errors.New(ErrMsgEncounterIDRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(encounterID)
	rec.completed = true
	rec.rounds = rounds
	rec.survivors = append([]string(nil), survivors...)

	log.Info(LogMsgEncounterCompleted, "encounter_id", encounterID, "rounds", rounds, "survivors", len(survivors))
	return nil
}

// GetSummary returns a snapshot of the encounter's stats, ordered by damage
// dealt descending so the most active creatures list first
func (s *service) GetSummary(ctx context.Context, encounterID string) (*Summary, error) {
	log := logger.FromContext(ctx)

	if encounterID == "" {
		return nil, errors.New(ErrMsgEncounterIDRequired)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &Summary{
		EncounterID: encounterID,
		Creatures:   []CreatureStats{},
	}

	rec, ok := s.encounters[encounterID]
	if !ok {
		return nil, domain.ErrEncounterNotFound
	}

	summary.Completed = rec.completed
	summary.Rounds = rec.rounds
	summary.Survivors = append([]string(nil), rec.survivors...)
	for _, c := range rec.creatures {
		summary.Creatures = append(summary.Creatures, *c)
	}
	sort.Slice(summary.Creatures, func(i, j int) bool {
		if summary.Creatures[i].DamageDealt != summary.Creatures[j].DamageDealt {
			return summary.Creatures[i].DamageDealt > summary.Creatures[j].DamageDealt
		}
		return summary.Creatures[i].CreatureID < summary.Creatures[j].CreatureID
	})

	log.Debug(LogMsgRetrievedSummary, "encounter_id", encounterID, "creatures", len(summary.Creatures))
	return summary, nil
}

// Forget drops the encounter's record
func (s *service) Forget(ctx context.Context, encounterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.encounters, encounterID)
}

// recordLocked returns the encounter record, creating it on first touch.
// Caller must hold s.mu.
func (s *service) recordLocked(encounterID string) *encounterRecord {
	rec, ok := s.encounters[encounterID]
	if !ok {
		rec = &encounterRecord{creatures: make(map[string]*CreatureStats)}
		s.encounters[encounterID] = rec
	}
	return rec
}

// creatureLocked returns the creature's stats entry, creating it on first
// touch. Caller must hold s.mu.
func (s *service) creatureLocked(encounterID, creatureID string) *CreatureStats {
	rec := s.recordLocked(encounterID)
	c, ok := rec.creatures[creatureID]
	if !ok {
		c = &CreatureStats{CreatureID: creatureID}
		rec.creatures[creatureID] = c
	}
	return c
}
