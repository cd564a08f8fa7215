package model

import (
	"time"

	"github.com/google/uuid"
)

type ReadingKind string

const (
	ReadingKindConsumption ReadingKind = "consumption"
	ReadingKindGeneration  ReadingKind = "generation"
)

func (k ReadingKind) IsValid() bool {
	return k == ReadingKindConsumption || k == ReadingKindGeneration
}

const UnitKilowattHour = "kWh"

// A single measurement of a device
//
// Magnitude is signed: negative values denote generation, positive values consumption.
// Readings are immutable once created.
type Reading struct {
	ID        string      `json:"id"`
	DeviceID  string      `json:"deviceId"`
	Magnitude float64     `json:"value"`
	Unit      string      `json:"unit"`
	Voltage   float64     `json:"voltage"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      ReadingKind `json:"type"`
}

// NewReadingID returns a unique, creation time ordered reading identifier
func NewReadingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// only fails if the random source is broken
		return uuid.NewString()
	}
	return id.String()
}

// Summary statistics over a device history
type Aggregate struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// The record forwarded to the external durable log
type SinkRecord struct {
	DeviceID  string      `json:"deviceId"`
	Magnitude float64     `json:"magnitude"`
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Voltage   float64     `json:"voltage"`
	Kind      ReadingKind `json:"kind"`
}

func NewSinkRecord(reading Reading) SinkRecord {
	return SinkRecord{
		DeviceID:  reading.DeviceID,
		Magnitude: reading.Magnitude,
		ID:        reading.ID,
		Timestamp: reading.Timestamp,
		Voltage:   reading.Voltage,
		Kind:      reading.Kind,
	}
}
