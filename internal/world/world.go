// Package world owns the bounded grid and its spatial index.
package world

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/osse101/GridClash_Go/internal/domain"
)

// World validates placement on a fixed-size grid and answers spatial
// queries. Multiple entities may occupy one cell; the per-cell order is
// insertion order. A World is not safe for concurrent use; the encounter
// coordinator serializes access.
type World struct {
	maxX int
	maxY int

	// index maps a cell to the ordered entities occupying it.
	index map[domain.Position][]*domain.Entity

	creatures []*domain.Creature
	objects   []*domain.WorldObject

	log *slog.Logger
}

// New creates an empty world with the given bounds. Bounds are fixed for
// the world's lifetime.
func New(maxX, maxY int, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	return &World{
		maxX:  maxX,
		maxY:  maxY,
		index: make(map[domain.Position][]*domain.Entity),
		log:   log,
	}
}

// Bounds returns the exclusive upper bounds of the grid.
func (w *World) Bounds() (maxX, maxY int) { return w.maxX, w.maxY }

// IsPositionValid reports whether pos lies inside the grid.
func (w *World) IsPositionValid(pos domain.Position) bool {
	return pos.X >= 0 && pos.X < w.maxX && pos.Y >= 0 && pos.Y < w.maxY
}

// AddCreature places a creature. A nil creature or an out-of-bounds
// position is rejected with a logged error and no state change; the caller
// keeps the unplaced creature.
func (w *World) AddCreature(c *domain.Creature) bool {
	if c == nil {
		w.log.Warn("rejecting nil creature")
		return false
	}
	if !w.IsPositionValid(c.Pos) {
		w.log.Error("rejecting creature placement",
			"creature", c.InternalName, "pos", c.Pos.String(),
			"reason", domain.ErrMsgInvalidPosition)
		return false
	}
	w.creatures = append(w.creatures, c)
	w.indexEntity(&c.Entity)
	return true
}

// AddObject places a world object with the same rejection rules as
// AddCreature.
func (w *World) AddObject(o *domain.WorldObject) bool {
	if o == nil {
		w.log.Warn("rejecting nil world object")
		return false
	}
	if !w.IsPositionValid(o.Pos) {
		w.log.Error("rejecting object placement",
			"object", o.InternalName, "pos", o.Pos.String(),
			"reason", domain.ErrMsgInvalidPosition)
		return false
	}
	w.objects = append(w.objects, o)
	w.indexEntity(&o.Entity)
	return true
}

// ObjectsAt returns the ordered entities occupying a cell, possibly empty.
// The returned slice is a copy; mutating it does not touch the index.
func (w *World) ObjectsAt(pos domain.Position) []*domain.Entity {
	occupants := w.index[pos]
	if len(occupants) == 0 {
		return nil
	}
	result := make([]*domain.Entity, len(occupants))
	copy(result, occupants)
	return result
}

// Creatures returns the owned creature collection, dead ones included.
// Dead creatures stay here for record-keeping after leaving the rotation.
func (w *World) Creatures() []*domain.Creature { return w.creatures }

// Objects returns the owned world object collection.
func (w *World) Objects() []*domain.WorldObject { return w.objects }

// CreatureByID finds a creature in the owned collection.
func (w *World) CreatureByID(id uuid.UUID) (*domain.Creature, error) {
	for _, c := range w.creatures {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCreatureNotFound
}

// ObjectByID finds a world object in the owned collection.
func (w *World) ObjectByID(id uuid.UUID) (*domain.WorldObject, error) {
	for _, o := range w.objects {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

// MoveCreature reindexes a creature at a new position. Out-of-bounds moves
// are rejected and the creature stays put.
func (w *World) MoveCreature(c *domain.Creature, pos domain.Position) error {
	if c == nil {
		return domain.ErrCreatureNotFound
	}
	if !w.IsPositionValid(pos) {
		w.log.Error("rejecting move",
			"creature", c.InternalName, "pos", pos.String(),
			"reason", domain.ErrMsgInvalidPosition)
		return domain.ErrInvalidPosition
	}
	w.unindexEntity(&c.Entity)
	c.Pos = pos
	w.indexEntity(&c.Entity)
	return nil
}

// RemoveObject drops an object from the index and the owned collection,
// for example after its item is picked up. Non-removable objects stay.
func (w *World) RemoveObject(o *domain.WorldObject) bool {
	if o == nil || !o.Removable {
		return false
	}
	w.unindexEntity(&o.Entity)
	for i, existing := range w.objects {
		if existing == o {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return true
		}
	}
	return false
}

// UnindexCreature removes a creature from the spatial index only. The
// creature stays in the owned collection; dead creatures are kept there
// for the encounter record.
func (w *World) UnindexCreature(c *domain.Creature) {
	if c != nil {
		w.unindexEntity(&c.Entity)
	}
}

func (w *World) indexEntity(e *domain.Entity) {
	w.index[e.Pos] = append(w.index[e.Pos], e)
}

func (w *World) unindexEntity(e *domain.Entity) {
	occupants := w.index[e.Pos]
	for i, existing := range occupants {
		if existing == e {
			w.index[e.Pos] = append(occupants[:i], occupants[i+1:]...)
			break
		}
	}
	if len(w.index[e.Pos]) == 0 {
		delete(w.index, e.Pos)
	}
}
