package store

import (
	"github.com/enbility/telemetry-go/model"
)

// interface for reading a device history
//
// implemented by ReadingStore, used by Aggregator
type HistoryReader interface {
	History(deviceID string) []model.Reading
}

// Computes summary statistics over a device history on demand
type Aggregator struct {
	reader HistoryReader
}

func NewAggregator(reader HistoryReader) *Aggregator {
	return &Aggregator{reader: reader}
}

// Aggregate summarizes the history of a device at call time
func (a *Aggregator) Aggregate(deviceID string) model.Aggregate {
	return Summarize(a.reader.History(deviceID))
}

// Summarize computes count, total, average, min and max of the magnitudes
//
// An empty list results in the zero value
func Summarize(readings []model.Reading) model.Aggregate {
	if len(readings) == 0 {
		return model.Aggregate{}
	}

	result := model.Aggregate{
		Count: len(readings),
		Min:   readings[0].Magnitude,
		Max:   readings[0].Magnitude,
	}

	for _, reading := range readings {
		result.Total += reading.Magnitude
		if reading.Magnitude < result.Min {
			result.Min = reading.Magnitude
		}
		if reading.Magnitude > result.Max {
			result.Max = reading.Magnitude
		}
	}

	result.Average = result.Total / float64(result.Count)

	return result
}
