package models

import "fmt"

// ValidationError reports malformed input. Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a bill, item or person ID that does not exist.
type NotFoundError struct {
	Kind string // "bill", "item" or "person"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidStateError reports a mutation the bill's status does not allow.
type InvalidStateError struct {
	BillID string
	Status Status
	Op     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: bill %s is %s", e.Op, e.BillID, e.Status)
}
