package ws

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/gorilla/websocket"
)

// Handling of the actual websocket connection to an observer
//
// Outgoing messages are queued and written by a single write pump, so the
// order of WriteMessage calls is the order on the wire. A connection whose
// queue is full is considered stalled and gets closed instead of blocking
// the caller.
type WebsocketConnection struct {
	// The actual websocket connection
	conn *websocket.Conn

	id string

	// The implementation handling incoming messages
	reader api.ConnectionReaderInterface

	// The connection was closed
	closeChannel chan struct{}

	// queued outgoing messages
	sendChannel chan []byte

	// internal handling of closed connections
	connectionClosed bool

	// the error message received for the closed connection
	connectionClosedError error

	muxConnClosed sync.Mutex
	muxConWrite   sync.Mutex
	shutdownOnce  sync.Once
}

var _ api.ConnectionInterface = (*WebsocketConnection)(nil)

// create a new websocket connection with the given outgoing queue size
//
// a queue size <= 0 uses DefaultSendQueueSize
func NewWebsocketConnection(conn *websocket.Conn, id string, queueSize int) *WebsocketConnection {
	if queueSize <= 0 {
		queueSize = DefaultSendQueueSize
	}

	return &WebsocketConnection{
		conn:         conn,
		id:           id,
		sendChannel:  make(chan []byte, queueSize),
		closeChannel: make(chan struct{}),
	}
}

func (w *WebsocketConnection) ID() string {
	return w.id
}

// sets the error message for the closed connection
func (w *WebsocketConnection) setConnClosedError(err error) {
	w.muxConnClosed.Lock()
	defer w.muxConnClosed.Unlock()

	w.connectionClosed = true

	if err != nil {
		w.connectionClosedError = err
	}
}

func (w *WebsocketConnection) connClosedError() error {
	w.muxConnClosed.Lock()
	defer w.muxConnClosed.Unlock()

	return w.connectionClosedError
}

// check if the websocket connection is closed
func (w *WebsocketConnection) isConnClosed() bool {
	w.muxConnClosed.Lock()
	defer w.muxConnClosed.Unlock()

	return w.connectionClosed
}

// start processing incoming and outgoing messages
func (w *WebsocketConnection) InitDataProcessing(reader api.ConnectionReaderInterface) {
	w.reader = reader

	go w.readPump()
	go w.writePump()
}

// writePump pumps messages from the send queue to the websocket connection
func (w *WebsocketConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.closeChannel:
			return

		case message := <-w.sendChannel:
			if !w.writeMessage(websocket.TextMessage, message) {
				return
			}

			logging.Log().Trace("Send:", w.id, string(message))

		case <-ticker.C:
			w.handlePing()
		}
	}
}

func (w *WebsocketConnection) handlePing() {
	if w.isConnClosed() {
		return
	}

	_ = w.writeMessage(websocket.PingMessage, nil)
}

// readPump checks for messages from the websocket connection
func (w *WebsocketConnection) readPump() {
	w.conn.SetReadLimit(MaxMessageSize)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error { _ = w.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		select {
		case <-w.closeChannel:
			return

		default:
			message, err := w.readWebsocketMessage()
			// ignore read errors if the connection got closed
			if w.isConnClosed() {
				return
			}

			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					err = nil
				} else {
					logging.Log().Debug(w.id, "websocket read error:", err)
				}
				w.close(err)
				return
			}

			logging.Log().Trace("Recv:", w.id, string(message))

			w.reader.HandleIncomingMessage(message)
		}
	}
}

// read a message from the websocket connection
func (w *WebsocketConnection) readWebsocketMessage() ([]byte, error) {
	if w.conn == nil {
		return nil, errors.New("connection is not initialized")
	}

	msgType, b, err := w.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	if err := w.checkWebsocketMessage(msgType, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (w *WebsocketConnection) checkWebsocketMessage(msgType int, data []byte) error {
	if msgType != websocket.TextMessage {
		return errors.New("message is not a text message")
	}

	if len(data) == 0 {
		return fmt.Errorf("empty message")
	}

	return nil
}

// close the current websocket connection and report it exactly once
func (w *WebsocketConnection) close(err error) {
	w.shutdownOnce.Do(func() {
		w.setConnClosedError(err)

		close(w.closeChannel)

		if w.conn != nil {
			_ = w.conn.Close()
		}

		if w.reader != nil {
			w.reader.ReportConnectionClosed(err)
		}
	})
}

// make sure websocket Write is only called once at a time
func (w *WebsocketConnection) writeMessage(messageType int, data []byte) bool {
	if w.isConnClosed() {
		return false
	}

	w.muxConWrite.Lock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := w.conn.WriteMessage(messageType, data)
	w.muxConWrite.Unlock()

	if err != nil {
		logging.Log().Debug(w.id, "error writing to websocket:", err)
		w.close(err)
		return false
	}

	return true
}

// queue a message for the websocket connection
//
// Never blocks. A full queue closes the connection asynchronously.
func (w *WebsocketConnection) WriteMessage(message []byte) error {
	if w.isConnClosed() {
		return api.ErrConnectionClosed
	}

	select {
	case w.sendChannel <- message:
		return nil
	default:
		logging.Log().Debug(w.id, "send queue is full, closing stalled connection")
		go w.closeWithFrame(websocket.ClosePolicyViolation, "send queue full", api.ErrSendQueueFull)
		return api.ErrSendQueueFull
	}
}

// send a close frame and shutdown the connection and all internals
func (w *WebsocketConnection) Close(closeCode int, reason string) {
	w.closeWithFrame(closeCode, reason, nil)
}

func (w *WebsocketConnection) closeWithFrame(closeCode int, reason string, err error) {
	if w.isConnClosed() {
		return
	}

	if reason != "" && w.conn != nil {
		w.muxConWrite.Lock()
		_ = w.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, reason), time.Now().Add(writeWait))
		w.muxConWrite.Unlock()
	}

	w.close(err)
}

// return if the connection is closed
func (w *WebsocketConnection) IsClosed() bool {
	return w.isConnClosed()
}

// return if the connection is closed and the error if available
func (w *WebsocketConnection) IsDataConnectionClosed() (bool, error) {
	isClosed := w.isConnClosed()
	err := w.connClosedError()

	if isClosed && err == nil {
		err = api.ErrConnectionClosed
	}

	return isClosed, err
}
