package tracker

import (
	"errors"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/api"
	"github.com/fakeyudi/worktrack/internal/identity"
)

const (
	msgEmptyUsername   = "Username cannot be empty."
	msgInvalidUsername = "Invalid username."
	msgLoginFailed     = "Could not connect to server or user not found."
	msgFetchFailed     = "Error fetching status."
	msgEventFailed     = "Could not record event."
	msgConnectivity    = "Could not connect to server."
	msgNoCompletion    = "Sorry, I could not get a response. Please try again."
)

// Describe turns an error from any client into the text shown to the user.
func Describe(err error) string {
	var (
		statusErr    *api.StatusError
		transportErr *api.TransportError
		decodeErr    *api.DecodeError
		adviceErr    *advisory.APIError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrEmptyUsername), errors.Is(err, identity.ErrEmptyUsername):
		return msgEmptyUsername
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.As(err, &transportErr):
		return msgConnectivity
	case errors.As(err, &decodeErr):
		return "Unexpected response from server."
	case errors.Is(err, advisory.ErrNoCompletion):
		return msgNoCompletion
	case errors.As(err, &adviceErr):
		return adviceErr.Error()
	}
	return err.Error()
}

// loginMessage classifies a failed login the way the login prompt shows it.
func loginMessage(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrEmptyUsername), errors.Is(err, identity.ErrEmptyUsername):
		return msgEmptyUsername
	case errors.As(err, &statusErr) && statusErr.IsClientError():
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return msgInvalidUsername
	}
	return msgLoginFailed
}

// eventMessage is the message line after a failed event post. The backend's
// own message is shown verbatim when it sent one.
func eventMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return "Error: " + statusErr.Message
		}
		return "Error: " + statusErr.Error()
	}
	if errors.Is(err, api.ErrEmptyUsername) {
		return "Error: " + msgEmptyUsername
	}
	return "Error: " + msgEventFailed
}

// adviceMessage is the modal body after a failed advisory call.
func adviceMessage(err error) string {
	if errors.Is(err, advisory.ErrNoCompletion) {
		return msgNoCompletion
	}
	return "Error: " + Describe(err) + ". Check the debug log for details."
}
