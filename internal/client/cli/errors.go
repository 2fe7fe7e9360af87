package cli

import (
	"errors"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// describeError turns a command failure into a single line for the user.
func describeError(err error) string {
	var (
		authErr *client.AuthenticationError
		reqErr  *client.RequestError
	)
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return "Session expired, please log in again"
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.Is(err, common.ErrorValidation):
		return "Invalid input: " + err.Error()
	case errors.As(err, &reqErr):
		return "Error: " + reqErr.Message
	default:
		return "Error: " + err.Error()
	}
}
