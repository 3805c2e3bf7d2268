// Package turn owns the round-robin rotation of acting creatures.
package turn

import (
	"sort"

	"github.com/osse101/GridClash_Go/internal/domain"
)

// Manager drives round-robin turn progression over the live creatures of an
// encounter. The order slice shares creature pointers with the world; it is
// not a copy. A Manager is not safe for concurrent use; the encounter
// coordinator serializes access.
type Manager struct {
	order        []*domain.Creature
	currentIndex int
	roundNumber  int
}

// NewManager creates a scheduler starting at round 1.
func NewManager(creatures ...*domain.Creature) *Manager {
	m := &Manager{roundNumber: 1}
	m.order = append(m.order, creatures...)
	return m
}

// Len returns the number of creatures in the rotation.
func (m *Manager) Len() int { return len(m.order) }

// Round returns the current round number, starting at 1.
func (m *Manager) Round() int { return m.roundNumber }

// CurrentCreature returns the creature whose turn it is. The index wraps
// defensively in case the tail of the rotation was just removed.
func (m *Manager) CurrentCreature() (*domain.Creature, error) {
	if len(m.order) == 0 {
		return nil, domain.ErrEmptyTurnOrder
	}
	return m.order[m.currentIndex%len(m.order)], nil
}

// NextTurn advances exactly one slot, wrapping modulo the order length. A
// wrap to slot 0 starts a new round. Dead creatures are never skipped here;
// the death handler removes them via RemoveCreature.
func (m *Manager) NextTurn() error {
	if len(m.order) == 0 {
		return domain.ErrEmptyTurnOrder
	}
	m.currentIndex = (m.currentIndex + 1) % len(m.order)
	if m.currentIndex == 0 {
		m.roundNumber++
	}
	return nil
}

// TurnOrder returns a snapshot of the rotation starting at the current
// creature and wrapping. Mutating the returned slice does not affect the
// manager.
func (m *Manager) TurnOrder() []*domain.Creature {
	if len(m.order) == 0 {
		return nil
	}
	result := make([]*domain.Creature, 0, len(m.order))
	for i := 0; i < len(m.order); i++ {
		result = append(result, m.order[(m.currentIndex+i)%len(m.order)])
	}
	return result
}

// SortByInitiative reorders the rotation descending by initiative and
// resets the current slot to the front. The round number is untouched.
// The sort is stable so equal initiatives keep their insertion order.
func (m *Manager) SortByInitiative() {
	sort.SliceStable(m.order, func(i, j int) bool {
		return m.order[i].Initiative > m.order[j].Initiative
	})
	m.currentIndex = 0
}

// AddCreature appends a creature to the end of the rotation.
func (m *Manager) AddCreature(c *domain.Creature) {
	if c == nil {
		return
	}
	m.order = append(m.order, c)
}

// RemoveCreature removes a creature by identity. Removing a slot before the
// current index shifts the index left so the currently acting creature
// keeps its turn. Removing the current or a later slot leaves the index
// alone; the next NextTurn's modulo clamps it.
func (m *Manager) RemoveCreature(c *domain.Creature) bool {
	for i, existing := range m.order {
		if existing != c {
			continue
		}
		m.order = append(m.order[:i], m.order[i+1:]...)
		if i < m.currentIndex {
			m.currentIndex--
		}
		// Removing at or after the current index leaves it alone; the
		// modulo in NextTurn clamps it on the next advance.
		return true
	}
	return false
}
