package store

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/enbility/telemetry-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestReadingStoreSuite(t *testing.T) {
	suite.Run(t, new(ReadingStoreSuite))
}

type ReadingStoreSuite struct {
	suite.Suite

	sut *ReadingStore

	start time.Time
}

func (s *ReadingStoreSuite) BeforeTest(suiteName, testName string) {
	s.sut = NewReadingStore(0)
	s.start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ReadingStoreSuite) reading(deviceID string, offset int, magnitude float64) model.Reading {
	return model.Reading{
		ID:        fmt.Sprintf("%s-%d", deviceID, offset),
		DeviceID:  deviceID,
		Magnitude: magnitude,
		Unit:      model.UnitKilowattHour,
		Voltage:   240,
		Timestamp: s.start.Add(time.Duration(offset) * time.Second),
		Kind:      model.ReadingKindConsumption,
	}
}

func (s *ReadingStoreSuite) Test_DefaultCapacity() {
	assert.Equal(s.T(), DefaultHistoryCapacity, s.sut.Capacity())
	assert.Equal(s.T(), 5, NewReadingStore(5).Capacity())
}

func (s *ReadingStoreSuite) Test_UnknownDevice() {
	history := s.sut.History("unknown")
	assert.NotNil(s.T(), history)
	assert.Empty(s.T(), history)
	assert.Equal(s.T(), 0, s.sut.Len("unknown"))

	_, ok := s.sut.Latest("unknown")
	assert.False(s.T(), ok)
}

func (s *ReadingStoreSuite) Test_RecordKeepsOrder() {
	for i := 0; i < 10; i++ {
		s.sut.Record(s.reading("dev-1", i, float64(i)))
	}

	history := s.sut.History("dev-1")
	require.Len(s.T(), history, 10)
	for i, reading := range history {
		assert.Equal(s.T(), fmt.Sprintf("dev-1-%d", i), reading.ID)
	}

	latest, ok := s.sut.Latest("dev-1")
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "dev-1-9", latest.ID)
}

func (s *ReadingStoreSuite) Test_EvictsOldest() {
	evicted := 0
	for i := 0; i < 150; i++ {
		evicted += s.sut.Record(s.reading("dev-1", i, 1))
	}

	history := s.sut.History("dev-1")
	require.Len(s.T(), history, DefaultHistoryCapacity)
	assert.Equal(s.T(), 50, evicted)
	assert.Equal(s.T(), "dev-1-50", history[0].ID)
	assert.Equal(s.T(), "dev-1-149", history[len(history)-1].ID)
}

func (s *ReadingStoreSuite) Test_EvictionIsPerDevice() {
	for i := 0; i < 120; i++ {
		s.sut.Record(s.reading("dev-1", i, 1))
	}
	for i := 0; i < 3; i++ {
		s.sut.Record(s.reading("dev-2", i, 1))
	}

	assert.Equal(s.T(), DefaultHistoryCapacity, s.sut.Len("dev-1"))
	assert.Equal(s.T(), 3, s.sut.Len("dev-2"))
	assert.Equal(s.T(), []string{"dev-1", "dev-2"}, s.sut.Devices())
}

func (s *ReadingStoreSuite) Test_OutOfOrderInsert() {
	s.sut = NewReadingStore(3)

	s.sut.Record(s.reading("dev-1", 10, 1))
	s.sut.Record(s.reading("dev-1", 30, 1))
	s.sut.Record(s.reading("dev-1", 20, 1))

	history := s.sut.History("dev-1")
	require.Len(s.T(), history, 3)
	assert.Equal(s.T(), "dev-1-10", history[0].ID)
	assert.Equal(s.T(), "dev-1-20", history[1].ID)
	assert.Equal(s.T(), "dev-1-30", history[2].ID)

	// older than everything kept, evicted right away
	evicted := s.sut.Record(s.reading("dev-1", 5, 1))
	assert.Equal(s.T(), 1, evicted)
	history = s.sut.History("dev-1")
	assert.Equal(s.T(), "dev-1-10", history[0].ID)
}

func (s *ReadingStoreSuite) Test_EqualTimestampsKeepInsertionOrder() {
	first := s.reading("dev-1", 1, 1)
	first.ID = "first"
	second := s.reading("dev-1", 1, 2)
	second.ID = "second"
	older := s.reading("dev-1", 0, 3)

	s.sut.Record(first)
	s.sut.Record(second)
	s.sut.Record(older)

	history := s.sut.History("dev-1")
	require.Len(s.T(), history, 3)
	assert.Equal(s.T(), older.ID, history[0].ID)
	assert.Equal(s.T(), "first", history[1].ID)
	assert.Equal(s.T(), "second", history[2].ID)
}

func (s *ReadingStoreSuite) Test_HistoryIsCopy() {
	s.sut.Record(s.reading("dev-1", 0, 1))

	history := s.sut.History("dev-1")
	history[0].Magnitude = 99

	assert.Equal(s.T(), 1.0, s.sut.History("dev-1")[0].Magnitude)
}

// random timestamps: the kept readings are never older than an evicted one
func (s *ReadingStoreSuite) Test_NoEvictionInversion() {
	rnd := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		sut := NewReadingStore(10)
		var recorded []model.Reading

		for i := 0; i < 60; i++ {
			reading := s.reading("dev-1", rnd.IntN(500), 1)
			reading.ID = fmt.Sprintf("r-%d-%d", round, i)
			recorded = append(recorded, reading)
			sut.Record(reading)

			history := sut.History("dev-1")
			assert.LessOrEqual(s.T(), len(history), 10)
			assert.True(s.T(), sort.SliceIsSorted(history, func(a, b int) bool {
				return history[a].Timestamp.Before(history[b].Timestamp)
			}))
		}

		history := sut.History("dev-1")
		kept := make(map[string]struct{}, len(history))
		for _, reading := range history {
			kept[reading.ID] = struct{}{}
		}
		oldestKept := history[0].Timestamp

		for _, reading := range recorded {
			if _, ok := kept[reading.ID]; ok {
				continue
			}
			assert.False(s.T(), reading.Timestamp.After(oldestKept), "evicted %s is newer than a kept reading", reading.ID)
		}
	}
}

func (s *ReadingStoreSuite) Test_ConcurrentRecord() {
	var wg sync.WaitGroup

	for device := 0; device < 8; device++ {
		deviceID := fmt.Sprintf("dev-%d", device)
		for writer := 0; writer < 4; writer++ {
			wg.Add(1)
			go func(writer int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					s.sut.Record(s.reading(deviceID, writer*1000+i, 1))
					assert.LessOrEqual(s.T(), len(s.sut.History(deviceID)), DefaultHistoryCapacity)
				}
			}(writer)
		}
	}
	wg.Wait()

	for device := 0; device < 8; device++ {
		assert.Equal(s.T(), DefaultHistoryCapacity, s.sut.Len(fmt.Sprintf("dev-%d", device)))
	}
}
