package channel

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/clinicdesk/internal/client/models"
)

// MessageType is the "type" tag of an envelope.
type MessageType string

const (
	PatientCreated         MessageType = "patient_created"
	PatientDeleted         MessageType = "patient_deleted"
	PatientHISIDUpdate     MessageType = "patient_his_id_update"
	EncounterCreated       MessageType = "encounter_created"
	EncounterStatusUpdated MessageType = "encounter_status_updated"
)

// Envelope is the {type, data} wire shape of every frame.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is one decoded inbound message.
type Event interface {
	Type() MessageType
}

type PatientCreatedEvent struct {
	models.Patient
}

type PatientDeletedEvent struct {
	ID int64 `json:"id"`
}

type PatientHISIDUpdateEvent struct {
	ID           int64  `json:"id"`
	HISPatientID string `json:"his_patient_id"`
}

type EncounterCreatedEvent struct {
	models.Encounter
}

type EncounterStatusUpdatedEvent struct {
	ID     string                 `json:"id"`
	Status models.EncounterStatus `json:"status"`
}

// RawEvent carries a message whose type has no typed variant. Data is the
// envelope's data member as received, nil when absent.
type RawEvent struct {
	Kind MessageType
	Data json.RawMessage
}

func (PatientCreatedEvent) Type() MessageType         { return PatientCreated }
func (PatientDeletedEvent) Type() MessageType         { return PatientDeleted }
func (PatientHISIDUpdateEvent) Type() MessageType     { return PatientHISIDUpdate }
func (EncounterCreatedEvent) Type() MessageType       { return EncounterCreated }
func (EncounterStatusUpdatedEvent) Type() MessageType { return EncounterStatusUpdated }
func (e RawEvent) Type() MessageType                  { return e.Kind }

// ParseError reports an inbound frame that could not be decoded.
type ParseError struct {
	Frame []byte
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed channel frame: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decode turns a frame into an Event. Frames that are not a JSON object with
// a non-empty type, or whose data does not fit the known variant, yield a
// *ParseError.
func Decode(frame []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, &ParseError{Frame: frame, Err: err}
	}
	if env.Type == "" {
		return nil, &ParseError{Frame: frame, Err: fmt.Errorf("missing type")}
	}

	switch env.Type {
	case PatientCreated:
		return decodeData[PatientCreatedEvent](frame, env.Data)
	case PatientDeleted:
		return decodeData[PatientDeletedEvent](frame, env.Data)
	case PatientHISIDUpdate:
		return decodeData[PatientHISIDUpdateEvent](frame, env.Data)
	case EncounterCreated:
		return decodeData[EncounterCreatedEvent](frame, env.Data)
	case EncounterStatusUpdated:
		return decodeData[EncounterStatusUpdatedEvent](frame, env.Data)
	default:
		return RawEvent{Kind: env.Type, Data: env.Data}, nil
	}
}

func decodeData[E Event](frame []byte, data json.RawMessage) (Event, error) {
	var ev E
	if len(data) == 0 {
		return nil, &ParseError{Frame: frame, Err: fmt.Errorf("missing data")}
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, &ParseError{Frame: frame, Err: err}
	}
	return ev, nil
}

// Encode builds an outbound frame.
func Encode(t MessageType, data any) ([]byte, error) {
	env := Envelope{Type: t}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
