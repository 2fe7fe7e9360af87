package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEncounterStatus(t *testing.T) {
	for _, s := range []EncounterStatus{"planned", "arrived", "in-progress", "completed", "cancelled"} {
		assert.True(t, ValidEncounterStatus(s), s)
	}
	assert.False(t, ValidEncounterStatus("done"))
	assert.False(t, ValidEncounterStatus(""))
}

func TestPatient_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Patient{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Patient{FirstName: "Ada"}.FullName())
}
