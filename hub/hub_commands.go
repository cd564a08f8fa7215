package hub

import (
	"encoding/json"
	"fmt"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
	"github.com/enbility/telemetry-go/util"
)

// handle a command received from a connection
//
// Every command is answered with an ack or an error event. Registry changes
// are applied before the ack is queued.
func (h *Hub) handleCommand(s *session, message []byte) {
	var cmd model.Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		logging.Log().Debug(s.conn.ID(), "invalid command:", err)
		s.send(model.CommandError{Error: "invalid command"})
		return
	}

	topic, err := h.processCommand(s, cmd)
	if err != nil {
		logging.Log().Debug(s.conn.ID(), "command", cmd.Action, "failed:", err)
		s.send(model.CommandError{
			Action:    cmd.Action,
			RequestID: cmd.RequestID,
			Error:     err.Error(),
		})
		return
	}

	ack := model.Ack{
		Action:    cmd.Action,
		RequestID: cmd.RequestID,
	}
	if topic != nil {
		ack.Topic = topic.String()
	}
	s.send(ack)
}

// returns the topic the command acted on, if any
func (h *Hub) processCommand(s *session, cmd model.Command) (*model.Topic, error) {
	switch cmd.Action {
	case model.CommandActionSubscribe:
		topic, err := h.deviceTopic(cmd.DeviceID, model.DeviceReadingsTopic, true)
		if err != nil {
			return nil, err
		}
		return &topic, s.subscribe(topic)

	case model.CommandActionUnsubscribe:
		topic, err := h.deviceTopic(cmd.DeviceID, model.DeviceReadingsTopic, false)
		if err != nil {
			return nil, err
		}
		return &topic, s.unsubscribe(topic)

	case model.CommandActionSubscribeStatus:
		topic := model.StatusTopic()
		return &topic, s.subscribe(topic)

	case model.CommandActionUnsubscribeStatus:
		topic := model.StatusTopic()
		return &topic, s.unsubscribe(topic)

	case model.CommandActionSubscribeAlerts:
		topic, err := h.deviceTopic(cmd.DeviceID, model.DeviceAlertsTopic, true)
		if err != nil {
			return nil, err
		}
		return &topic, s.subscribe(topic)

	case model.CommandActionUnsubscribeAlerts:
		topic, err := h.deviceTopic(cmd.DeviceID, model.DeviceAlertsTopic, false)
		if err != nil {
			return nil, err
		}
		return &topic, s.unsubscribe(topic)

	case model.CommandActionJoinRoom:
		topic, err := roomTopic(cmd.Room)
		if err != nil {
			return nil, err
		}
		return &topic, s.subscribe(topic)

	case model.CommandActionLeaveRoom:
		topic, err := roomTopic(cmd.Room)
		if err != nil {
			return nil, err
		}
		return &topic, s.unsubscribe(topic)

	case model.CommandActionRoomMessage:
		topic, err := roomTopic(cmd.Room)
		if err != nil {
			return nil, err
		}
		h.Publish(topic, model.RoomMessage{
			Room:         topic.Key(),
			ConnectionID: s.conn.ID(),
			Message:      cmd.Message,
			Timestamp:    h.clock(),
		})
		return &topic, nil

	case model.CommandActionUpdateStatus:
		if cmd.DeviceID == "" {
			return nil, fmt.Errorf("%w: deviceId", api.ErrMissingTopicKey)
		}
		if err := h.UpdateDeviceStatus(cmd.DeviceID, cmd.Status); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return nil, fmt.Errorf("%w %q", api.ErrUnknownAction, cmd.Action)
}

// build a device topic, subscriptions require a known device
func (h *Hub) deviceTopic(deviceID string, topicFn func(string) model.Topic, mustExist bool) (model.Topic, error) {
	if deviceID == "" {
		return model.Topic{}, fmt.Errorf("%w: deviceId", api.ErrMissingTopicKey)
	}

	if _, ok := h.catalog.Device(deviceID); mustExist && !ok {
		return model.Topic{}, fmt.Errorf("%w: %s", api.ErrUnknownDevice, deviceID)
	}

	return topicFn(deviceID), nil
}

func roomTopic(room string) (model.Topic, error) {
	name := util.NormalizeRoomName(room)
	if name == "" {
		return model.Topic{}, fmt.Errorf("%w: room", api.ErrMissingTopicKey)
	}

	return model.RoomTopic(name), nil
}
