package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ApplicationID identifies a whitelist application. It is assigned once at
// submission time and never reused, so the active/archived partitions can be
// keyed by it without a secondary index.
type ApplicationID uuid.UUID

func NewApplicationID() ApplicationID {
	return ApplicationID(uuid.New())
}

func ParseApplicationID(s string) (ApplicationID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ApplicationID{}, fmt.Errorf("invalid application id: %w", err)
	}
	return ApplicationID(parsed), nil
}

func (id ApplicationID) String() string {
	return uuid.UUID(id).String()
}

func (id ApplicationID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText/UnmarshalText make the ID round-trip through the JSON
// partition documents as a plain string.
func (id ApplicationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ApplicationID) UnmarshalText(data []byte) error {
	parsed, err := ParseApplicationID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
