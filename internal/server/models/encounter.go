package models

import "time"

type EncounterStatus string

const (
	EncounterPlanned    EncounterStatus = "planned"
	EncounterArrived    EncounterStatus = "arrived"
	EncounterInProgress EncounterStatus = "in-progress"
	EncounterCompleted  EncounterStatus = "completed"
	EncounterCancelled  EncounterStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s EncounterStatus) Valid() bool {
	switch s {
	case EncounterPlanned, EncounterArrived, EncounterInProgress, EncounterCompleted, EncounterCancelled:
		return true
	}
	return false
}

// Encounter is a booked visit. The patient and practitioner names are
// joined in when reading so clients can render a row without extra lookups.
type Encounter struct {
	ID                         string          `json:"id"`
	PatientID                  int64           `json:"patientId"`
	PatientName                string          `json:"patientName"`
	PractitionerID             string          `json:"practitionerId"`
	PractitionerName           string          `json:"practitionerName"`
	PractitionerSpecialization string          `json:"practitionerSpecialization,omitempty"`
	Status                     EncounterStatus `json:"status"`
	StartTime                  time.Time       `json:"startTime"`
	CreatedAt                  time.Time       `json:"createdAt"`
}
