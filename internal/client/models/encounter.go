package models

import "time"

// EncounterStatus is the lifecycle state of an encounter.
type EncounterStatus string

const (
	EncounterPlanned    EncounterStatus = "planned"
	EncounterArrived    EncounterStatus = "arrived"
	EncounterInProgress EncounterStatus = "in-progress"
	EncounterCompleted  EncounterStatus = "completed"
	EncounterCancelled  EncounterStatus = "cancelled"
)

var encounterStatuses = map[EncounterStatus]struct{}{
	EncounterPlanned:    {},
	EncounterArrived:    {},
	EncounterInProgress: {},
	EncounterCompleted:  {},
	EncounterCancelled:  {},
}

// ValidEncounterStatus reports whether s is one of the known statuses.
func ValidEncounterStatus(s EncounterStatus) bool {
	_, ok := encounterStatuses[s]
	return ok
}

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

// NewEncounter is the payload for booking an encounter.
type NewEncounter struct {
	PatientID      int64     `json:"patient_id"`
	PractitionerID string    `json:"practitioner_id"`
	StartTime      time.Time `json:"start_time"`
}

// CreatedID is the {"id": ...} body returned by create endpoints.
type CreatedID struct {
	ID string `json:"id"`
}
