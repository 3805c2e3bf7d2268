package domain

import "fmt"

// Difficulty scales incoming damage for the whole encounter.
type Difficulty string

const (
	DifficultyBeginner Difficulty = "BEGINNER"
	DifficultyNormal   Difficulty = "NORMAL"
	DifficultyVeteran  Difficulty = "VETERAN"
)

// ParseDifficulty maps a config string onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyNormal, DifficultyVeteran:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, s)
}

// DamagePercent returns the percentage applied to creature damage at this
// difficulty. Beginner softens hits, veteran sharpens them.
func (d Difficulty) DamagePercent() int {
	switch d {
	case DifficultyBeginner:
		return 90
	case DifficultyVeteran:
		return 120
	default:
		return 100
	}
}
