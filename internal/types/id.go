// README: Common identifier type used across modules.
package types

import "github.com/google/uuid"

// ID identifies a stored record.
type ID string

// NewID returns a random UUIDv4 identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Valid reports whether id parses as a UUID.
func (id ID) Valid() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

func (id ID) String() string { return string(id) }
