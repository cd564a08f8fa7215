package store

import (
	"sort"
	"sync"

	"github.com/enbility/telemetry-go/model"
)

// DefaultHistoryCapacity is the number of readings kept per device
const DefaultHistoryCapacity = 100

// the ordered readings of one device
type deviceHistory struct {
	readings []model.Reading

	mux sync.RWMutex
}

// Bounded per device history of readings
//
// Each device has its own lock, so recording for one device never waits
// on another. The store level lock only guards the device map itself.
type ReadingStore struct {
	capacity int

	histories map[string]*deviceHistory

	muxHistories sync.RWMutex
}

// Create a new reading store keeping at most capacity readings per device
//
// A capacity <= 0 uses DefaultHistoryCapacity
func NewReadingStore(capacity int) *ReadingStore {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	return &ReadingStore{
		capacity:  capacity,
		histories: make(map[string]*deviceHistory),
	}
}

// Capacity returns the per device retention cap
func (s *ReadingStore) Capacity() int {
	return s.capacity
}

// return the history of a device, create it if requested
func (s *ReadingStore) history(deviceID string, create bool) *deviceHistory {
	s.muxHistories.RLock()
	history, ok := s.histories[deviceID]
	s.muxHistories.RUnlock()

	if ok || !create {
		return history
	}

	s.muxHistories.Lock()
	defer s.muxHistories.Unlock()

	// another writer may have created it in the meantime
	if history, ok = s.histories[deviceID]; ok {
		return history
	}

	history = &deviceHistory{
		readings: make([]model.Reading, 0, s.capacity+1),
	}
	s.histories[deviceID] = history

	return history
}

// Record appends a reading to the history of its device
//
// The history stays sorted by timestamp, readings with equal timestamps keep
// their insertion order. If the device holds more than the capacity afterwards,
// the oldest readings are evicted. Returns the number of evicted readings.
func (s *ReadingStore) Record(reading model.Reading) int {
	history := s.history(reading.DeviceID, true)

	history.mux.Lock()
	defer history.mux.Unlock()

	readings := history.readings

	// the common case is a reading newer than everything stored
	index := len(readings)
	if index > 0 && reading.Timestamp.Before(readings[index-1].Timestamp) {
		index = sort.Search(len(readings), func(i int) bool {
			return readings[i].Timestamp.After(reading.Timestamp)
		})
	}

	readings = append(readings, model.Reading{})
	copy(readings[index+1:], readings[index:])
	readings[index] = reading

	evicted := 0
	if overflow := len(readings) - s.capacity; overflow > 0 {
		evicted = overflow
		// shift in place so the backing array does not grow
		n := copy(readings, readings[overflow:])
		clear(readings[n:])
		readings = readings[:n]
	}

	history.readings = readings

	return evicted
}

// History returns the current readings of a device ordered by timestamp
//
// The result is a copy and is empty for unknown devices
func (s *ReadingStore) History(deviceID string) []model.Reading {
	history := s.history(deviceID, false)
	if history == nil {
		return []model.Reading{}
	}

	history.mux.RLock()
	defer history.mux.RUnlock()

	result := make([]model.Reading, len(history.readings))
	copy(result, history.readings)

	return result
}

// Latest returns the newest reading of a device
func (s *ReadingStore) Latest(deviceID string) (model.Reading, bool) {
	history := s.history(deviceID, false)
	if history == nil {
		return model.Reading{}, false
	}

	history.mux.RLock()
	defer history.mux.RUnlock()

	if len(history.readings) == 0 {
		return model.Reading{}, false
	}

	return history.readings[len(history.readings)-1], true
}

// Len returns the number of stored readings of a device
func (s *ReadingStore) Len(deviceID string) int {
	history := s.history(deviceID, false)
	if history == nil {
		return 0
	}

	history.mux.RLock()
	defer history.mux.RUnlock()

	return len(history.readings)
}

// Devices returns the ids of all devices with a history
func (s *ReadingStore) Devices() []string {
	s.muxHistories.RLock()
	defer s.muxHistories.RUnlock()

	ids := make([]string, 0, len(s.histories))
	for id := range s.histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
