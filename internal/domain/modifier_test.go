package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifiers(t *testing.T) {
	tests := []struct {
		name     string
		modifier Modifier
		value    int
		critical bool
		want     int
	}{
		{name: "flat adds", modifier: FlatModifier{Amount: 3}, value: 10, want: 13},
		{name: "flat can subtract", modifier: FlatModifier{Amount: -3}, value: 10, want: 7},
		{name: "percent truncates", modifier: PercentModifier{Percent: 150}, value: 5, want: 7},
		{name: "percent below hundred reduces", modifier: PercentModifier{Percent: 50}, value: 9, want: 4},
		{name: "critical bonus fires on crit", modifier: CriticalBonusModifier{Bonus: 5}, value: 10, critical: true, want: 15},
		{name: "critical bonus dormant otherwise", modifier: CriticalBonusModifier{Bonus: 5}, value: 10, want: 10},
		{name: "beginner softens", modifier: DifficultyModifier{Difficulty: DifficultyBeginner}, value: 10, want: 9},
		{name: "normal is identity", modifier: DifficultyModifier{Difficulty: DifficultyNormal}, value: 10, want: 10},
		{name: "veteran sharpens", modifier: DifficultyModifier{Difficulty: DifficultyVeteran}, value: 10, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.modifier.Apply(tt.value, tt.critical))
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("VETERAN")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyVeteran, d)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
