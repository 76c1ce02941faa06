// Package core holds the domain types of the desk and the ports its hosts
// and storage adapters implement.
package core

import "fmt"

// Persisted keys. Scalars are stored as raw strings, sequences as JSON arrays.
const (
	KeyGroundChart = "selectedGroundChart"
	KeyFrequency   = "selectedFrequency"
	KeyFlightPlans = "flightPlans"
	KeyAuthToken   = "authToken"
)

// ListID names one of the fixed note lists. The value doubles as its store key.
type ListID string

const (
	NotesList1 ListID = "notesList1"
	NotesList2 ListID = "notesList2"
	NotesList3 ListID = "notesList3"
)

// NoteLists is every list the desk renders, in page order.
var NoteLists = []ListID{NotesList1, NotesList2, NotesList3}

// ParseListID accepts either the list key ("notesList2") or its ordinal ("2").
func ParseListID(s string) (ListID, error) {
	for i, id := range NoteLists {
		if s == string(id) || s == fmt.Sprint(i+1) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
}

// EventType represents the kind of change observed on a key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
