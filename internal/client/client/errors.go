package client

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a request was rejected for an expired
// credential and the refresh attempt failed. The session is cleared by then.
var ErrSessionExpired = errors.New("session expired, please log in again")

// RequestError is a non-success response or a transport failure. Status is 0
// when no response was received.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// AuthenticationError is a rejected login or registration.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Unwrap() error { return e.Err }
