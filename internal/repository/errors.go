// Package repository implements MongoDB persistence for users, properties
// and favorites, plus the sentinel errors shared across layers. Handlers
// translate the sentinels into HTTP statuses: ErrNotFound -> 404,
// ErrForbidden -> 403, ErrEmailExists / ErrDuplicateFavorite -> conflict
// responses.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts a mutation on a property
// they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering with an address that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrPropertyIDExists is returned when creating a property whose external id
// is already taken.
var ErrPropertyIDExists = errors.New("property id already exists")

// ErrDuplicateFavorite is returned when a user favorites the same property
// twice. The unique (user, property) index raises it.
var ErrDuplicateFavorite = errors.New("property already in favorites")
