package catalog

import (
	"errors"
	"sync"
	"testing"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Defaults(t *testing.T) {
	sut, err := NewCatalog(DefaultDevices())
	require.NoError(t, err)

	assert.Equal(t, 5, sut.Len())
	devices := sut.Devices()
	assert.Equal(t, "device-001", devices[0].ID)
	assert.Equal(t, "device-005", devices[4].ID)
	assert.Equal(t, []string{"device-002"}, sut.ByCategory(model.DeviceCategorySolarArray))
}

func TestNewCatalog_Invalid(t *testing.T) {
	_, err := NewCatalog([]model.Device{{Name: "no id", Category: model.DeviceCategoryBattery}})
	assert.Error(t, err)

	_, err = NewCatalog([]model.Device{
		{ID: "a", Category: model.DeviceCategoryBattery},
		{ID: "a", Category: model.DeviceCategoryBattery},
	})
	assert.Error(t, err)

	_, err = NewCatalog([]model.Device{{ID: "a", Category: "fusion-reactor"}})
	assert.Error(t, err)

	_, err = NewCatalog([]model.Device{{ID: "a", Category: model.DeviceCategoryBattery, Status: "sleeping"}})
	assert.True(t, errors.Is(err, api.ErrInvalidStatus))
}

func TestNewCatalog_DefaultStatus(t *testing.T) {
	sut, err := NewCatalog([]model.Device{{ID: "a", Category: model.DeviceCategoryBattery}})
	require.NoError(t, err)

	device, ok := sut.Device("a")
	assert.True(t, ok)
	assert.Equal(t, model.DeviceStatusActive, device.Status)
}

func TestSetStatus(t *testing.T) {
	sut, err := NewCatalog(DefaultDevices())
	require.NoError(t, err)

	device, err := sut.SetStatus("device-003", model.DeviceStatusError)
	require.NoError(t, err)
	assert.Equal(t, model.DeviceStatusError, device.Status)

	device, _ = sut.Device("device-003")
	assert.Equal(t, model.DeviceStatusError, device.Status)

	_, err = sut.SetStatus("unknown", model.DeviceStatusError)
	assert.True(t, errors.Is(err, api.ErrUnknownDevice))

	_, err = sut.SetStatus("device-003", "broken")
	assert.True(t, errors.Is(err, api.ErrInvalidStatus))

	_, ok := sut.Device("unknown")
	assert.False(t, ok)
}

func TestSetStatus_Concurrent(t *testing.T) {
	sut, err := NewCatalog(DefaultDevices())
	require.NoError(t, err)

	statuses := []model.DeviceStatus{model.DeviceStatusActive, model.DeviceStatusInactive, model.DeviceStatusMaintenance}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = sut.SetStatus("device-001", statuses[(i+j)%len(statuses)])
				_ = sut.Devices()
			}
		}(i)
	}
	wg.Wait()

	device, _ := sut.Device("device-001")
	assert.Contains(t, statuses, device.Status)
}
