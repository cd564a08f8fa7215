package catalog

import "github.com/enbility/telemetry-go/model"

// DefaultDevices is the built-in catalog used when no devices are configured
func DefaultDevices() []model.Device {
	return []model.Device{
		{ID: "device-001", Name: "Main Grid Meter", Category: model.DeviceCategoryGridMeter, Status: model.DeviceStatusActive, Location: "Building A - Basement"},
		{ID: "device-002", Name: "Rooftop Solar Array", Category: model.DeviceCategorySolarArray, Status: model.DeviceStatusActive, Location: "Building A - Roof"},
		{ID: "device-003", Name: "Wind Turbine North", Category: model.DeviceCategoryWindTurbine, Status: model.DeviceStatusActive, Location: "North Field"},
		{ID: "device-004", Name: "Battery Storage Unit", Category: model.DeviceCategoryBattery, Status: model.DeviceStatusActive, Location: "Building B - Utility Room"},
		{ID: "device-005", Name: "EV Charging Station", Category: model.DeviceCategoryEVCharger, Status: model.DeviceStatusMaintenance, Location: "Parking Lot"},
	}
}
