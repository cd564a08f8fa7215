package store

import (
	"testing"
	"time"

	"github.com/enbility/telemetry-go/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_Empty(t *testing.T) {
	sut := NewAggregator(NewReadingStore(0))

	result := sut.Aggregate("unknown")
	assert.Equal(t, model.Aggregate{Count: 0, Total: 0, Average: 0, Min: 0, Max: 0}, result)
}

func TestAggregate_Values(t *testing.T) {
	readingStore := NewReadingStore(0)
	sut := NewAggregator(readingStore)

	start := time.Now()
	for i, value := range []float64{5, 10, 15} {
		readingStore.Record(model.Reading{
			ID:        model.NewReadingID(),
			DeviceID:  "dev-1",
			Magnitude: value,
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Kind:      model.ReadingKindConsumption,
		})
	}

	result := sut.Aggregate("dev-1")
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 30.0, result.Total)
	assert.Equal(t, 10.0, result.Average)
	assert.Equal(t, 5.0, result.Min)
	assert.Equal(t, 15.0, result.Max)
}

func TestSummarize_Negative(t *testing.T) {
	result := Summarize([]model.Reading{
		{Magnitude: -4},
		{Magnitude: 0},
		{Magnitude: -2},
	})

	assert.Equal(t, 3, result.Count)
	assert.Equal(t, -6.0, result.Total)
	assert.Equal(t, -2.0, result.Average)
	assert.Equal(t, -4.0, result.Min)
	assert.Equal(t, 0.0, result.Max)
}
