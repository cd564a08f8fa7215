package ws

import "time"

const (
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = 50 * time.Second

	// maximum size of an incoming command
	MaxMessageSize = 4096

	// DefaultSendQueueSize is the number of outgoing messages buffered per connection
	DefaultSendQueueSize = 256
)
