package domain

import (
	"fmt"
	"time"
)

// Kind classifies a saved address as one end of a commute.
type Kind string

const (
	KindHome Kind = "home"
	KindWork Kind = "work"
)

// ParseKind validates a user-supplied address kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindHome, KindWork:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid address kind %q (must be %q or %q)", s, KindHome, KindWork)
}

// Represents a saved location between which commute times are tracked.
// An Address is immutable after creation; it is removed only by an
// explicit delete, which cascades to its samples.
type Address struct {
	ID        int64
	Kind      Kind
	Label     string
	Location  string
	CreatedAt time.Time
}
