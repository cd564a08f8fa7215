package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/model"
)

// a catalog entry, status is the only mutable field
type entry struct {
	device model.Device

	mux sync.RWMutex
}

// Static device catalog loaded at startup
//
// Devices are never added or removed after creation. Each device has its
// own lock for the status field, the device map itself is read only.
type Catalog struct {
	entries map[string]*entry

	// catalog order of the device ids
	order []string
}

var _ api.DeviceCatalogInterface = (*Catalog)(nil)

// Create a catalog from a list of devices
//
// Returns an error for duplicate or empty ids, unknown categories or statuses
func NewCatalog(devices []model.Device) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]*entry, len(devices)),
		order:   make([]string, 0, len(devices)),
	}

	for _, device := range devices {
		if device.ID == "" {
			return nil, fmt.Errorf("device %q: empty id", device.Name)
		}
		if _, exists := c.entries[device.ID]; exists {
			return nil, fmt.Errorf("device %s: duplicate id", device.ID)
		}
		if !device.Category.IsValid() {
			return nil, fmt.Errorf("device %s: unknown category %q", device.ID, device.Category)
		}
		if device.Status == "" {
			device.Status = model.DeviceStatusActive
		}
		if !device.Status.IsValid() {
			return nil, fmt.Errorf("device %s: %w %q", device.ID, api.ErrInvalidStatus, device.Status)
		}

		c.entries[device.ID] = &entry{device: device}
		c.order = append(c.order, device.ID)
	}

	return c, nil
}

// Devices returns a snapshot of all devices in catalog order
func (c *Catalog) Devices() []model.Device {
	result := make([]model.Device, 0, len(c.order))
	for _, id := range c.order {
		e := c.entries[id]
		e.mux.RLock()
		result = append(result, e.device)
		e.mux.RUnlock()
	}

	return result
}

// Device returns a snapshot of a single device
func (c *Catalog) Device(id string) (model.Device, bool) {
	e, ok := c.entries[id]
	if !ok {
		return model.Device{}, false
	}

	e.mux.RLock()
	defer e.mux.RUnlock()

	return e.device, true
}

// Len returns the number of devices
func (c *Catalog) Len() int {
	return len(c.order)
}

// SetStatus changes the operational status of a device and returns the updated device
func (c *Catalog) SetStatus(id string, status model.DeviceStatus) (model.Device, error) {
	if !status.IsValid() {
		return model.Device{}, fmt.Errorf("%w %q", api.ErrInvalidStatus, status)
	}

	e, ok := c.entries[id]
	if !ok {
		return model.Device{}, fmt.Errorf("%w: %s", api.ErrUnknownDevice, id)
	}

	e.mux.Lock()
	defer e.mux.Unlock()

	e.device.Status = status

	return e.device, nil
}

// ByCategory returns the ids of all devices of a category, sorted
func (c *Catalog) ByCategory(category model.DeviceCategory) []string {
	var ids []string
	for _, id := range c.order {
		e := c.entries[id]
		e.mux.RLock()
		if e.device.Category == category {
			ids = append(ids, id)
		}
		e.mux.RUnlock()
	}
	sort.Strings(ids)

	return ids
}
