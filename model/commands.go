package model

type CommandAction string

// incoming actions sent by connections
const (
	CommandActionSubscribe         CommandAction = "subscribe"
	CommandActionUnsubscribe       CommandAction = "unsubscribe"
	CommandActionSubscribeStatus   CommandAction = "subscribeStatus"
	CommandActionUnsubscribeStatus CommandAction = "unsubscribeStatus"
	CommandActionSubscribeAlerts   CommandAction = "subscribeAlerts"
	CommandActionUnsubscribeAlerts CommandAction = "unsubscribeAlerts"
	CommandActionJoinRoom          CommandAction = "joinRoom"
	CommandActionLeaveRoom         CommandAction = "leaveRoom"
	CommandActionRoomMessage       CommandAction = "roomMessage"
	CommandActionUpdateStatus      CommandAction = "updateStatus"
)

// Command is the wire format of every incoming message
type Command struct {
	Action    CommandAction `json:"action"`
	RequestID string        `json:"requestId,omitempty"`
	DeviceID  string        `json:"deviceId,omitempty"`
	Room      string        `json:"room,omitempty"`
	Status    DeviceStatus  `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
}
