package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{name: "same square", a: Position{X: 3, Y: 3}, b: Position{X: 3, Y: 3}, want: 0},
		{name: "orthogonal", a: Position{X: 0, Y: 0}, b: Position{X: 0, Y: 4}, want: 4},
		{name: "diagonal uses larger axis", a: Position{X: 0, Y: 0}, b: Position{X: 2, Y: 5}, want: 5},
		{name: "symmetric", a: Position{X: 7, Y: 1}, b: Position{X: 2, Y: 3}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Distance(tt.b))
			assert.Equal(t, tt.want, tt.b.Distance(tt.a))
		})
	}
}

func TestPositionAdjacent(t *testing.T) {
	center := Position{X: 5, Y: 5}

	assert.True(t, center.Adjacent(Position{X: 4, Y: 4}), "diagonal neighbors are adjacent")
	assert.True(t, center.Adjacent(Position{X: 5, Y: 6}))
	assert.True(t, center.Adjacent(center), "same square is within reach")
	assert.False(t, center.Adjacent(Position{X: 5, Y: 7}))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "(2,9)", Position{X: 2, Y: 9}.String())
}
