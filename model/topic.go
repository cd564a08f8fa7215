package model

import "fmt"

type TopicSpace uint

// set the values manually instead of using iota, so log data can be associated easier
const (
	TopicSpaceReadings TopicSpace = 0
	TopicSpaceStatus   TopicSpace = 1
	TopicSpaceAlerts   TopicSpace = 2
	TopicSpaceRooms    TopicSpace = 3
)

// number of disjoint topic spaces
const TopicSpaceCount = 4

func (s TopicSpace) String() string {
	switch s {
	case TopicSpaceReadings:
		return "readings"
	case TopicSpaceStatus:
		return "status"
	case TopicSpaceAlerts:
		return "alerts"
	case TopicSpaceRooms:
		return "rooms"
	}
	return fmt.Sprintf("space(%d)", uint(s))
}

// statusTopicKey is the only key used in the status topic space
const statusTopicKey = "status"

// Topic identifies a channel within one of the topic spaces
//
// The fields are unexported so a topic can only be built with the constructors
// below, which keeps the four spaces from colliding on equal keys.
type Topic struct {
	space TopicSpace
	key   string
}

func DeviceReadingsTopic(deviceID string) Topic {
	return Topic{space: TopicSpaceReadings, key: deviceID}
}

func StatusTopic() Topic {
	return Topic{space: TopicSpaceStatus, key: statusTopicKey}
}

func DeviceAlertsTopic(deviceID string) Topic {
	return Topic{space: TopicSpaceAlerts, key: deviceID}
}

func RoomTopic(name string) Topic {
	return Topic{space: TopicSpaceRooms, key: name}
}

func (t Topic) Space() TopicSpace {
	return t.space
}

func (t Topic) Key() string {
	return t.key
}

func (t Topic) String() string {
	return t.space.String() + ":" + t.key
}
