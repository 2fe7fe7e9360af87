// Package models defines the records the desk client exchanges with the
// backend: patients, practitioners and encounters.
package models

import "time"

// Patient is a person registered at the reception desk. HISPatientID is
// assigned later by the hospital information system and may be absent.
type Patient struct {
	ID           int64     `json:"id"`
	HISPatientID *string   `json:"his_patient_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns "First Last".
func (p Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// NewPatient is the payload for creating a patient.
type NewPatient struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}
