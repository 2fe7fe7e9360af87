package models

type Practitioner struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
}

// NewPractitioner is the payload for creating a practitioner.
type NewPractitioner struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
}
