package api

import (
	"context"

	"github.com/enbility/telemetry-go/model"
)

/* Hub */

// interface for the process wide telemetry service
type HubInterface interface {
	ReadingRecorderInterface

	Start(ctx context.Context) error
	Shutdown()

	Devices() []model.Device
	Device(id string) (model.Device, bool)
	History(deviceID string) []model.Reading
	Latest(deviceID string) (model.Reading, bool)
	Aggregate(deviceID string) model.Aggregate

	UpdateDeviceStatus(deviceID string, status model.DeviceStatus) error
	RaiseAlert(alert model.Alert)
	Publish(topic model.Topic, event model.Event)
}
