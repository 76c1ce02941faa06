package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlightPlan is a plan submitted on the local path.
// Timestamp is assigned at save time, in Unix milliseconds.
type FlightPlan struct {
	Callsign      string `json:"callsign,omitempty"`
	Departure     string `json:"departure,omitempty"`
	Arrival       string `json:"arrival,omitempty"`
	Aircraft      string `json:"aircraft,omitempty"`
	FlightRule    string `json:"flightRule,omitempty"`
	SID           string `json:"sid,omitempty"`
	CruisingLevel string `json:"cruisingLevel,omitempty"`
	Squawk        string `json:"squawk,omitempty"`
	Timestamp     int64  `json:"timestamp,omitempty"`
}

// UnmarshalJSON accepts numbers and booleans for the text fields, which
// plans written by other page revisions carry for levels and squawks.
// Only malformed JSON is an error.
func (p *FlightPlan) UnmarshalJSON(data []byte) error {
	var raw struct {
		Callsign      Cell `json:"callsign"`
		Departure     Cell `json:"departure"`
		Arrival       Cell `json:"arrival"`
		Aircraft      Cell `json:"aircraft"`
		FlightRule    Cell `json:"flightRule"`
		SID           Cell `json:"sid"`
		CruisingLevel Cell `json:"cruisingLevel"`
		Squawk        Cell `json:"squawk"`
		Timestamp     Cell `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var ts int64
	if raw.Timestamp != "" {
		f, err := strconv.ParseFloat(string(raw.Timestamp), 64)
		if err != nil {
			return fmt.Errorf("flight plan timestamp %q: %w", raw.Timestamp, err)
		}
		ts = int64(f)
	}
	*p = FlightPlan{
		Callsign:      string(raw.Callsign),
		Departure:     string(raw.Departure),
		Arrival:       string(raw.Arrival),
		Aircraft:      string(raw.Aircraft),
		FlightRule:    string(raw.FlightRule),
		SID:           string(raw.SID),
		CruisingLevel: string(raw.CruisingLevel),
		Squawk:        string(raw.Squawk),
		Timestamp:     ts,
	}
	return nil
}

// RemoteFlightPlan is the record shape served by the spreadsheet-backed
// read endpoint. It is never persisted and never merged with local plans.
type RemoteFlightPlan struct {
	Callsign      Cell `json:"Callsign"`
	Departure     Cell `json:"Departure"`
	Arrival       Cell `json:"Arrival"`
	Aircraft      Cell `json:"Aircraft"`
	FlightRule    Cell `json:"FlightRule"`
	SID           Cell `json:"SID"`
	CruisingLevel Cell `json:"CruisingLevel"`
	Squawk        Cell `json:"Squawk"`
}

// Cell is a spreadsheet value decoded as text. Sheets hand back numbers for
// levels and squawks, so strings, numbers, booleans and null are all accepted.
type Cell string

func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*c = Cell(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Cell(n.String())
	return nil
}

// ParseSquawk validates a transponder code: four octal digits.
func ParseSquawk(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return "", ErrInvalidSquawk
	}
	sq, err := strconv.ParseInt(s, 8, 32) // base 8
	if err != nil || sq < 0 || sq > 0o7777 {
		return "", ErrInvalidSquawk
	}
	return s, nil
}
