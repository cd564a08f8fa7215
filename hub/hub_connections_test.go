package hub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/enbility/telemetry-go/catalog"
	"github.com/enbility/telemetry-go/config"
	"github.com/enbility/telemetry-go/model"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebsocketTestHub(t *testing.T) (*Hub, *httptest.Server) {
	devices, err := catalog.NewCatalog(catalog.DefaultDevices())
	require.NoError(t, err)

	h := NewHub(config.Default(), devices, nil)
	server := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		h.Shutdown()
		server.Close()
	})

	return h, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (model.EventType, map[string]any) {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)

	return decodeEnvelope(t, data)
}

func TestWebsocket_SubscribeAndReceive(t *testing.T) {
	h, server := newWebsocketTestHub(t)

	client := dial(t, server)
	defer client.Close()

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"subscribe","deviceId":"device-002"}`)))
	event, data := readEvent(t, client)
	assert.Equal(t, model.EventTypeAck, event)
	assert.Equal(t, "readings:device-002", data["topic"])

	reading := model.Reading{
		ID:        "r-1",
		DeviceID:  "device-002",
		Magnitude: -4.5,
		Unit:      model.UnitKilowattHour,
		Voltage:   238.1,
		Timestamp: time.Now(),
		Kind:      model.ReadingKindGeneration,
	}
	h.RecordReading(reading)
	// not subscribed
	h.RecordReading(model.Reading{ID: "r-2", DeviceID: "device-001", Magnitude: 6, Unit: model.UnitKilowattHour, Kind: model.ReadingKindConsumption})
	h.RecordReading(model.Reading{ID: "r-3", DeviceID: "device-002", Magnitude: -4, Unit: model.UnitKilowattHour, Kind: model.ReadingKindGeneration, Timestamp: time.Now()})

	event, data = readEvent(t, client)
	assert.Equal(t, model.EventTypeReadingUpdate, event)
	assert.Equal(t, "r-1", data["id"])
	assert.Equal(t, -4.5, data["value"])

	event, data = readEvent(t, client)
	assert.Equal(t, model.EventTypeReadingUpdate, event)
	assert.Equal(t, "r-3", data["id"])
}

func TestWebsocket_DisconnectRemovesEverywhere(t *testing.T) {
	h, server := newWebsocketTestHub(t)

	client := dial(t, server)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"subscribeStatus"}`)))
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"joinRoom","room":"ops"}`)))
	readEvent(t, client)
	readEvent(t, client)

	assert.Equal(t, 1, h.SessionCount())
	assert.True(t, h.Registry().HasMembers(model.StatusTopic()))

	_ = client.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	_ = client.Close()

	assert.Eventually(t, func() bool {
		return h.SessionCount() == 0 &&
			!h.Registry().HasMembers(model.StatusTopic()) &&
			!h.Registry().HasMembers(model.RoomTopic("ops"))
	}, 2*time.Second, 10*time.Millisecond)

	// publishing to the emptied topics is a no-op
	assert.NoError(t, h.UpdateDeviceStatus("device-001", model.DeviceStatusInactive))
}

func TestWebsocket_RoomBroadcast(t *testing.T) {
	_, server := newWebsocketTestHub(t)

	alice := dial(t, server)
	defer alice.Close()
	bob := dial(t, server)
	defer bob.Close()

	for _, client := range []*websocket.Conn{alice, bob} {
		require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"joinRoom","room":"Lobby"}`)))
		event, _ := readEvent(t, client)
		require.Equal(t, model.EventTypeAck, event)
	}

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"action":"roomMessage","room":"lobby","message":"hi"}`)))

	event, data := readEvent(t, bob)
	assert.Equal(t, model.EventTypeRoomMessage, event)
	assert.Equal(t, "hi", data["message"])

	event, _ = readEvent(t, alice)
	assert.Equal(t, model.EventTypeRoomMessage, event)
	event, _ = readEvent(t, alice)
	assert.Equal(t, model.EventTypeAck, event)
}

func TestWebsocket_ShutdownClosesClients(t *testing.T) {
	h, server := newWebsocketTestHub(t)

	client := dial(t, server)
	defer client.Close()

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"subscribeStatus"}`)))
	readEvent(t, client)

	h.Shutdown()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := client.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), err)
	assert.Equal(t, 0, h.SessionCount())
}
