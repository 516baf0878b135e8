package ports

import "errors"

// ErrPageNotFound is returned when a location has no saved page state.
var ErrPageNotFound = errors.New("page not found")
