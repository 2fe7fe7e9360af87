package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncounterStatus_Valid(t *testing.T) {
	for _, s := range []EncounterStatus{EncounterPlanned, EncounterArrived, EncounterInProgress, EncounterCompleted, EncounterCancelled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, EncounterStatus("done").Valid())
	assert.False(t, EncounterStatus("").Valid())
}

func TestPractitioner_FullName(t *testing.T) {
	assert.Equal(t, "Gregory House", Practitioner{FirstName: "Gregory", LastName: "House"}.FullName())
	assert.Equal(t, "Gregory J House", Practitioner{FirstName: "Gregory", MiddleName: "J", LastName: "House"}.FullName())
}
