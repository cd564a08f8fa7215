package hub

import (
	"fmt"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
)

// RecordReading stores the reading, forwards it to the sink and publishes it
//
// The history always grows, the reading is only encoded and pushed when the
// device reading topic has members.
func (h *Hub) RecordReading(reading model.Reading) {
	evicted := h.store.Record(reading)
	h.metrics.recorded(reading, evicted)

	h.sink.Forward(reading)

	topic := model.DeviceReadingsTopic(reading.DeviceID)
	if h.registry.HasMembers(topic) {
		h.Publish(topic, model.ReadingUpdate{Reading: reading})
	}

	h.evaluateReading(reading)
}

// raise a warning if a consumption reading is above the configured threshold
func (h *Hub) evaluateReading(reading model.Reading) {
	threshold := h.cfg.Alerts.ConsumptionThreshold
	if threshold <= 0 || reading.Kind != model.ReadingKindConsumption || reading.Magnitude <= threshold {
		return
	}

	h.RaiseAlert(model.Alert{
		DeviceID:  reading.DeviceID,
		Severity:  model.AlertSeverityWarning,
		Message:   fmt.Sprintf("consumption of %.2f %s exceeds %.2f %s", reading.Magnitude, reading.Unit, threshold, reading.Unit),
		ReadingID: reading.ID,
		Timestamp: reading.Timestamp,
	})
}

// History returns the readings of a device, oldest first
//
// An unknown device returns an empty history.
func (h *Hub) History(deviceID string) []model.Reading {
	return h.store.History(deviceID)
}

// Latest returns the newest reading of a device
func (h *Hub) Latest(deviceID string) (model.Reading, bool) {
	return h.store.Latest(deviceID)
}

// Aggregate summarizes the history of a device
func (h *Hub) Aggregate(deviceID string) model.Aggregate {
	return h.aggregator.Aggregate(deviceID)
}

func (h *Hub) Devices() []model.Device {
	return h.catalog.Devices()
}

func (h *Hub) Device(id string) (model.Device, bool) {
	return h.catalog.Device(id)
}

// UpdateDeviceStatus changes the status of a device and publishes the change
//
// Switching a device to error additionally raises a critical alert.
func (h *Hub) UpdateDeviceStatus(deviceID string, status model.DeviceStatus) error {
	device, err := h.catalog.SetStatus(deviceID, status)
	if err != nil {
		return err
	}

	now := h.clock()

	logging.Log().Debug("device", device.ID, "status changed to", device.Status)

	h.Publish(model.StatusTopic(), model.StatusUpdate{
		DeviceID:  device.ID,
		Status:    device.Status,
		Timestamp: now,
	})

	if device.Status == model.DeviceStatusError {
		h.RaiseAlert(model.Alert{
			DeviceID:  device.ID,
			Severity:  model.AlertSeverityCritical,
			Message:   fmt.Sprintf("device %s reported an error", device.Name),
			Timestamp: now,
		})
	}

	return nil
}

// RaiseAlert publishes the alert to the alert topic of its device
func (h *Hub) RaiseAlert(alert model.Alert) {
	if alert.Timestamp.IsZero() {
		alert.Timestamp = h.clock()
	}

	logging.Log().Debugf("alert for %s (%s): %s", alert.DeviceID, alert.Severity, alert.Message)

	h.Publish(model.DeviceAlertsTopic(alert.DeviceID), alert)
}

// validate a reading received from an external producer
func (h *Hub) validateReading(reading model.Reading) error {
	if _, ok := h.catalog.Device(reading.DeviceID); !ok {
		return fmt.Errorf("%w: %s", api.ErrUnknownDevice, reading.DeviceID)
	}

	switch reading.Kind {
	case model.ReadingKindConsumption:
		if reading.Magnitude < 0 {
			return fmt.Errorf("%w: consumption must not be negative", api.ErrInvalidReading)
		}
	case model.ReadingKindGeneration:
		if reading.Magnitude > 0 {
			return fmt.Errorf("%w: generation must not be positive", api.ErrInvalidReading)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", api.ErrInvalidReading, reading.Kind)
	}

	if reading.Unit != model.UnitKilowattHour {
		return fmt.Errorf("%w: unknown unit %q", api.ErrInvalidReading, reading.Unit)
	}

	return nil
}
