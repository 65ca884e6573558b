package websocket

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHubBroadcastsToFlightWatchers(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "CA1234")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount("CA1234") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastSeatsChanged("CA1234", 148, "o-1")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageTypeSeatsChanged, msg.Type)
	assert.Equal(t, "CA1234", msg.FlightNumber)
	assert.Equal(t, 148, msg.AvailableSeats)
	assert.Equal(t, "o-1", msg.OrderID)
}

func TestHubIgnoresOtherFlights(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "MU5678")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount("MU5678") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastSeatsChanged("CA1234", 148, "o-1")
	hub.BroadcastFlightUpdated("MU5678", 120)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageTypeFlightUpdated, msg.Type, "only the watched flight's events arrive")
	assert.Equal(t, "MU5678", msg.FlightNumber)
}
