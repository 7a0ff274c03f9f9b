package store

import "github.com/google/uuid"

func newUUID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed UUID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
