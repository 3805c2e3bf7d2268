package world

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GridClash_Go/internal/domain"
)

func newWorld(t *testing.T) *World {
	t.Helper()
	return New(10, 10, nil)
}

func placeCreature(t *testing.T, w *World, name string, pos domain.Position) *domain.Creature {
	t.Helper()
	c, err := domain.NewCreature(name, name, pos, 10, 1, 0)
	require.NoError(t, err)
	require.True(t, w.AddCreature(c))
	return c
}

func TestIsPositionValid(t *testing.T) {
	w := newWorld(t)

	tests := []struct {
		name string
		pos  domain.Position
		want bool
	}{
		{name: "origin", pos: domain.Position{X: 0, Y: 0}, want: true},
		{name: "inside", pos: domain.Position{X: 5, Y: 9}, want: true},
		{name: "x at bound", pos: domain.Position{X: 10, Y: 0}, want: false},
		{name: "y at bound", pos: domain.Position{X: 0, Y: 10}, want: false},
		{name: "negative", pos: domain.Position{X: -1, Y: 3}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.IsPositionValid(tt.pos))
		})
	}
}

func TestAddCreatureRejectsOutOfBounds(t *testing.T) {
	w := newWorld(t)
	c, err := domain.NewCreature("goblin", "Goblin", domain.Position{X: 12, Y: 0}, 10, 1, 0)
	require.NoError(t, err)

	assert.False(t, w.AddCreature(c))
	assert.Empty(t, w.Creatures(), "rejected placement leaves no state behind")
	assert.Empty(t, w.ObjectsAt(c.Pos))
}

func TestAddCreatureRejectsNil(t *testing.T) {
	w := newWorld(t)
	assert.False(t, w.AddCreature(nil))
}

func TestObjectsAtSharedCellKeepsInsertionOrder(t *testing.T) {
	w := newWorld(t)
	pos := domain.Position{X: 3, Y: 3}
	first := placeCreature(t, w, "first", pos)
	second := placeCreature(t, w, "second", pos)

	occupants := w.ObjectsAt(pos)
	require.Len(t, occupants, 2)
	assert.Same(t, &first.Entity, occupants[0])
	assert.Same(t, &second.Entity, occupants[1])

	occupants[0] = nil
	assert.NotNil(t, w.ObjectsAt(pos)[0], "returned slice is a copy")
}

func TestMoveCreatureReindexes(t *testing.T) {
	w := newWorld(t)
	from := domain.Position{X: 1, Y: 1}
	to := domain.Position{X: 2, Y: 2}
	c := placeCreature(t, w, "goblin", from)

	require.NoError(t, w.MoveCreature(c, to))

	assert.Empty(t, w.ObjectsAt(from))
	require.Len(t, w.ObjectsAt(to), 1)
	assert.Equal(t, to, c.Pos)
}

func TestMoveCreatureRejectsOutOfBounds(t *testing.T) {
	w := newWorld(t)
	from := domain.Position{X: 1, Y: 1}
	c := placeCreature(t, w, "goblin", from)

	err := w.MoveCreature(c, domain.Position{X: 10, Y: 1})

	assert.ErrorIs(t, err, domain.ErrInvalidPosition)
	assert.Equal(t, from, c.Pos, "creature stays put on a rejected move")
	assert.Len(t, w.ObjectsAt(from), 1)
}

func TestCreatureByID(t *testing.T) {
	w := newWorld(t)
	c := placeCreature(t, w, "goblin", domain.Position{X: 1, Y: 1})

	found, err := w.CreatureByID(c.ID)
	require.NoError(t, err)
	assert.Same(t, c, found)

	_, err = w.CreatureByID(uuid.New())
	assert.ErrorIs(t, err, domain.ErrCreatureNotFound)
}

func TestAddAndRemoveObject(t *testing.T) {
	w := newWorld(t)
	pos := domain.Position{X: 4, Y: 4}
	sword := domain.NewAttackItem("longsword", "Longsword", 5, 1, domain.DamagePhysical, 0, 10)
	obj, err := domain.NewItemObject(sword, pos)
	require.NoError(t, err)
	require.True(t, w.AddObject(obj))

	found, err := w.ObjectByID(obj.ID)
	require.NoError(t, err)
	assert.Same(t, obj, found)

	assert.True(t, w.RemoveObject(obj))
	assert.Empty(t, w.ObjectsAt(pos))
	assert.Empty(t, w.Objects())
	_, err = w.ObjectByID(obj.ID)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestRemoveObjectKeepsObstacles(t *testing.T) {
	w := newWorld(t)
	pos := domain.Position{X: 6, Y: 6}
	boulder, err := domain.NewObstacle("boulder", "Boulder", pos)
	require.NoError(t, err)
	require.True(t, w.AddObject(boulder))

	assert.False(t, w.RemoveObject(boulder), "non-removable objects stay")
	assert.Len(t, w.ObjectsAt(pos), 1)
}

func TestUnindexCreatureKeepsRecord(t *testing.T) {
	w := newWorld(t)
	pos := domain.Position{X: 2, Y: 7}
	c := placeCreature(t, w, "goblin", pos)

	w.UnindexCreature(c)

	assert.Empty(t, w.ObjectsAt(pos), "corpse leaves the grid")
	assert.Len(t, w.Creatures(), 1, "but stays in the encounter record")
}
