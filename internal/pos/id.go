package pos

import "github.com/google/uuid"

// IDGenerator returns identifiers that are unique within a collection.
type IDGenerator func(prefix string) string

// NewID combines a millisecond timestamp with random bits (UUIDv7).
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return prefix + id.String()
}
