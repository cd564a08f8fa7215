package model

import "fmt"

type DeviceCategory string

const (
	DeviceCategoryGridMeter   DeviceCategory = "grid-meter"
	DeviceCategorySolarArray  DeviceCategory = "solar-array"
	DeviceCategoryWindTurbine DeviceCategory = "wind-turbine"
	DeviceCategoryBattery     DeviceCategory = "battery"
	DeviceCategoryEVCharger   DeviceCategory = "ev-charger"
)

var deviceCategories = []DeviceCategory{
	DeviceCategoryGridMeter,
	DeviceCategorySolarArray,
	DeviceCategoryWindTurbine,
	DeviceCategoryBattery,
	DeviceCategoryEVCharger,
}

func (c DeviceCategory) IsValid() bool {
	for _, item := range deviceCategories {
		if item == c {
			return true
		}
	}
	return false
}

// returns all known device categories
func DeviceCategories() []DeviceCategory {
	return append([]DeviceCategory(nil), deviceCategories...)
}

func ParseDeviceCategory(value string) (DeviceCategory, error) {
	category := DeviceCategory(value)
	if !category.IsValid() {
		return "", fmt.Errorf("unknown device category %q", value)
	}
	return category, nil
}

type DeviceStatus string

const (
	DeviceStatusActive      DeviceStatus = "active"
	DeviceStatusInactive    DeviceStatus = "inactive"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
	DeviceStatusError       DeviceStatus = "error"
)

func (s DeviceStatus) IsValid() bool {
	switch s {
	case DeviceStatusActive, DeviceStatusInactive, DeviceStatusMaintenance, DeviceStatusError:
		return true
	}
	return false
}

func ParseDeviceStatus(value string) (DeviceStatus, error) {
	status := DeviceStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown device status %q", value)
	}
	return status, nil
}

// A simulated device of the catalog
//
// ID, Name, Category and Location are fixed at catalog load time,
// only Status changes during the process lifetime
type Device struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category DeviceCategory `json:"type"`
	Status   DeviceStatus   `json:"status"`
	Location string         `json:"location"`
}
