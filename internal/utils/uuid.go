package utils

import "github.com/google/uuid"

// Generator produces unique identifiers for new notes, teams, folders, and
// activity records.
type Generator interface {
	Generate() uuid.UUID
}

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUID (v7), falling back to v4 when the
// system clock source is unavailable.
func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
