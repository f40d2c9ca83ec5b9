// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without parsing
// driver errors. For example, ErrUsernameExists lets the registration
// handler answer with the "already exists" message while any other error
// surfaces as a generic store failure.
package repository

import "errors"

// ErrNotFound is returned when a show, actor or episode lookup matches no
// rows. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration finds a customer with
// the requested username. The check runs before the insert inside the
// allocation transaction; it is not backed by a unique index at this
// layer, so two simultaneous registrations can still race.
var ErrUsernameExists = errors.New("username already exists")

// ErrAmbiguousUser is returned when a credential lookup matches zero rows
// or more than one row. Both cases are rejected identically so the login
// response never reveals whether a username exists.
var ErrAmbiguousUser = errors.New("ambiguous or unknown user")
