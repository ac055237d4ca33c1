package server

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/internal/lookuptable"
	"github.com/lox/pokertexter/internal/texter"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testResponder(t *testing.T) *texter.Responder {
	t.Helper()
	tables := make(map[int][]lookuptable.Row)
	for _, n := range []int{1, 2} {
		for _, c := range handclass.All() {
			tables[n] = append(tables[n], lookuptable.Row{Class: c, Win: 0.25 * float64(n), Tie: 0.05, Gain: float64(n)})
		}
	}
	store, err := lookuptable.NewStore(tables)
	require.NoError(t, err)
	return texter.NewResponder(store)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer("", testResponder(t), testLogger(), WithClock(quartz.NewMock(t)), WithIdleTimeout(5*time.Second))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))

	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "every response carries a request id")
}

func TestRequestIDIsPropagated(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
}

func postSMS(t *testing.T, ts *httptest.Server, body string) (int, twiml) {
	t.Helper()
	resp, err := http.PostForm(ts.URL+"/sms", url.Values{"Body": {body}, "From": {"+15550000000"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	var out twiml
	if resp.StatusCode == http.StatusOK {
		assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
		require.NoError(t, xml.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestSMS(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"answer", "ace king suited 2", "P(win): 50%\nP(tie): 5%\nExpected unit gain: 2"},
		{"examples", "examples", texter.Examples},
		{"usage", "hi there", string(texter.ErrUsage)},
		{"suited pair", "9 9 suited 1", string(texter.ErrSuitedPair)},
		{"unsupported", "9 8 suited 7", "Error! Only 1-2 other players are currently supported."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, reply := postSMS(t, ts, tt.body)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, reply.Message)
		})
	}
}

func TestSMSQueryString(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/sms?Body=" + url.QueryEscape("A A o 1"))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), xml.Header), string(raw))
	assert.Contains(t, string(raw), "<Response><Message>P(win): 25%")
}

func TestSMSMethodNotAllowed(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/sms", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg map[string]any) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(msg))
	var got Message
	require.NoError(t, conn.ReadJSON(&got))
	return got
}

func TestWebSocketQuery(t *testing.T) {
	t.Parallel()
	srv, ts := newTestServer(t)
	conn := dialWS(t, ts)

	got := roundTrip(t, conn, map[string]any{
		"type":      "query",
		"requestId": "q1",
		"data":      map[string]string{"text": "king ace suited one"},
	})
	require.Equal(t, MessageTypeReply, got.Type)
	assert.Equal(t, "q1", got.RequestID)

	var reply ReplyData
	require.NoError(t, json.Unmarshal(got.Data, &reply))
	require.NotNil(t, reply.Answer)
	assert.Equal(t, AnswerData{Class: "AKs", Opponents: 1, Win: 0.25, Tie: 0.05, Gain: 1}, *reply.Answer)
	assert.Equal(t, "P(win): 25%\nP(tie): 5%\nExpected unit gain: 1", reply.Text)

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestWebSocketUserErrors(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	got := roundTrip(t, conn, map[string]any{"type": "query", "data": map[string]string{"text": "nonsense"}})
	require.Equal(t, MessageTypeReply, got.Type)
	var reply ReplyData
	require.NoError(t, json.Unmarshal(got.Data, &reply))
	assert.Equal(t, string(texter.ErrUsage), reply.Text)
	assert.Nil(t, reply.Answer)

	got = roundTrip(t, conn, map[string]any{"type": "query", "data": map[string]string{"text": "example"}})
	require.NoError(t, json.Unmarshal(got.Data, &reply))
	assert.Equal(t, texter.Examples, reply.Text)
}

func TestWebSocketProtocolErrors(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	got := roundTrip(t, conn, map[string]any{"type": "dance", "data": map[string]string{}})
	require.Equal(t, MessageTypeError, got.Type)
	var e ErrorData
	require.NoError(t, json.Unmarshal(got.Data, &e))
	assert.Equal(t, "unknown_type", e.Code)

	got = roundTrip(t, conn, map[string]any{"type": "query", "data": "not an object"})
	require.Equal(t, MessageTypeError, got.Type)
	require.NoError(t, json.Unmarshal(got.Data, &e))
	assert.Equal(t, "invalid_message", e.Code)
}

func TestShutdownClosesWebSockets(t *testing.T) {
	t.Parallel()
	srv, ts := newTestServer(t)
	conn := dialWS(t, ts)

	require.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, srv.Shutdown(t.Context()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
}
