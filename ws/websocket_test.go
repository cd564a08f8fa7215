package ws

import (
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/mocks"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestWebsocketSuite(t *testing.T) {
	suite.Run(t, new(WebsocketSuite))
}

type WebsocketSuite struct {
	suite.Suite

	sut *WebsocketConnection

	testServer *httptest.Server
	testWsConn *websocket.Conn

	reader *mocks.ConnectionReaderInterface

	received chan []byte
	closed   atomic.Int32
}

func (s *WebsocketSuite) BeforeTest(suiteName, testName string) {
	s.received = make(chan []byte, 10)
	s.closed.Store(0)

	s.reader = mocks.NewConnectionReaderInterface(s.T())
	s.reader.EXPECT().HandleIncomingMessage(mock.Anything).Run(func(msg []byte) {
		s.received <- msg
	}).Return().Maybe()
	s.reader.EXPECT().ReportConnectionClosed(mock.Anything).Run(func(err error) {
		s.closed.Add(1)
	}).Return().Maybe()

	ts := &testServer{}
	s.testServer, s.testWsConn = newWSServer(s.T(), ts)

	s.sut = NewWebsocketConnection(s.testWsConn, "conn-1", 0)
}

func (s *WebsocketSuite) AfterTest(suiteName, testName string) {
	_ = s.testWsConn.Close()
	s.testServer.Close()
}

func (s *WebsocketSuite) Test_Connection() {
	s.sut.InitDataProcessing(s.reader)

	assert.Equal(s.T(), "conn-1", s.sut.ID())
	assert.Equal(s.T(), false, s.sut.IsClosed())

	err := s.sut.WriteMessage([]byte(`{"action":"subscribe"}`))
	assert.Nil(s.T(), err)

	select {
	case msg := <-s.received:
		assert.Equal(s.T(), `{"action":"subscribe"}`, string(msg))
	case <-time.After(2 * time.Second):
		s.T().Fatal("echo not received")
	}

	isConnClosed, err := s.sut.IsDataConnectionClosed()
	assert.Equal(s.T(), false, isConnClosed)
	assert.Nil(s.T(), err)

	s.sut.Close(websocket.CloseNormalClosure, "bye")

	isConnClosed, err = s.sut.IsDataConnectionClosed()
	assert.Equal(s.T(), true, isConnClosed)
	assert.True(s.T(), errors.Is(err, api.ErrConnectionClosed))

	err = s.sut.WriteMessage([]byte("late"))
	assert.True(s.T(), errors.Is(err, api.ErrConnectionClosed))

	// double close reports once
	s.sut.Close(websocket.CloseNormalClosure, "bye")
	s.sut.close(nil)
	assert.Equal(s.T(), int32(1), s.closed.Load())
}

func (s *WebsocketSuite) Test_MessageOrder() {
	s.sut.InitDataProcessing(s.reader)

	messages := []string{"one", "two", "three", "four", "five"}
	for _, msg := range messages {
		assert.Nil(s.T(), s.sut.WriteMessage([]byte(msg)))
	}

	for _, want := range messages {
		select {
		case msg := <-s.received:
			assert.Equal(s.T(), want, string(msg))
		case <-time.After(2 * time.Second):
			s.T().Fatal("echo not received")
		}
	}
}

func (s *WebsocketSuite) Test_QueueFull() {
	// the pumps are not running, so nothing drains the queue
	s.sut = NewWebsocketConnection(s.testWsConn, "conn-1", 2)
	s.sut.reader = s.reader

	assert.Nil(s.T(), s.sut.WriteMessage([]byte("one")))
	assert.Nil(s.T(), s.sut.WriteMessage([]byte("two")))

	err := s.sut.WriteMessage([]byte("three"))
	assert.True(s.T(), errors.Is(err, api.ErrSendQueueFull))

	assert.Eventually(s.T(), func() bool {
		return s.sut.IsClosed()
	}, time.Second, 5*time.Millisecond)

	_, err = s.sut.IsDataConnectionClosed()
	assert.True(s.T(), errors.Is(err, api.ErrSendQueueFull))
	assert.Equal(s.T(), int32(1), s.closed.Load())
}

func (s *WebsocketSuite) Test_RemoteClose() {
	s.sut.InitDataProcessing(s.reader)

	assert.Nil(s.T(), s.sut.WriteMessage([]byte("close")))

	assert.Eventually(s.T(), func() bool {
		return s.closed.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(s.T(), s.sut.IsClosed())
}

func (s *WebsocketSuite) Test_Invalid() {
	s.sut.close(nil)

	result := s.sut.writeMessage(websocket.TextMessage, []byte{})
	assert.Equal(s.T(), false, result)

	s.sut.conn = nil

	data, err := s.sut.readWebsocketMessage()
	assert.NotNil(s.T(), err)
	assert.Nil(s.T(), data)

	err = s.sut.checkWebsocketMessage(websocket.BinaryMessage, []byte("x"))
	assert.NotNil(s.T(), err)

	err = s.sut.checkWebsocketMessage(websocket.TextMessage, []byte{})
	assert.NotNil(s.T(), err)
}

func (s *WebsocketSuite) Test_BinaryMessageCloses() {
	s.sut.InitDataProcessing(s.reader)

	assert.Nil(s.T(), s.sut.WriteMessage([]byte("binary")))

	assert.Eventually(s.T(), func() bool {
		return s.closed.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	_, err := s.sut.IsDataConnectionClosed()
	assert.NotNil(s.T(), err)
}

func (s *WebsocketSuite) Test_Ping() {
	s.sut.InitDataProcessing(s.reader)

	s.sut.handlePing()

	isClosed, err := s.sut.IsDataConnectionClosed()
	assert.Equal(s.T(), false, isClosed)
	assert.Nil(s.T(), err)
}

var upgrader = websocket.Upgrader{}

func newWSServer(t *testing.T, h http.Handler) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	s := httptest.NewServer(h)
	wsURL := strings.Replace(s.URL, "http://", "ws://", -1)

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}

	return s, ws
}

// echoes text messages, "close" closes the connection and "binary"
// answers with a binary frame
type testServer struct {
}

func (s *testServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer ws.Close()

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}

		switch string(msg) {
		case "close":
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
			return
		case "binary":
			_ = ws.WriteMessage(websocket.BinaryMessage, []byte{1, 2})
			continue
		}

		if err = ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			continue
		}
	}
}
