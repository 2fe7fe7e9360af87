package models

import "time"

// Patient is a person registered at the reception desk. HISPatientID is
// filled in later, once the hospital information system has assigned one.
type Patient struct {
	ID           int64     `json:"id"`
	HISPatientID *string   `json:"his_patient_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
