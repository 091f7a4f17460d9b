package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/geombridge/internal/binding"
	"github.com/zeusync/geombridge/internal/config"
	"github.com/zeusync/geombridge/internal/core/observability/log"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.WebSocket.Addr = "127.0.0.1:0"
	cfg.QUIC.Addr = "127.0.0.1:0"
	cfg.Limits.ShutdownGrace = 2 * time.Second
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	registry, err := binding.NewRegistry()
	require.NoError(t, err)
	return NewServer(cfg, registry, log.NewNop())
}

// serveHTTP mounts srv on an httptest server and returns the bridge URL.
func serveHTTP(t *testing.T, srv *Server) string {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + srv.config.WebSocket.Path
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req any) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

// handleOf returns the handle of an object result.
func handleOf(t *testing.T, resp Response) string {
	t.Helper()
	require.True(t, resp.OK, "response error: %+v", resp.Error)
	ref, ok := resp.Result.(map[string]any)
	require.True(t, ok, "result is not an object: %#v", resp.Result)
	return ref["$ref"].(string)
}

func ref(handle string) map[string]any {
	return map[string]any{"$ref": handle}
}

func TestWebSocketBridge(t *testing.T) {
	srv := newTestServer(t, testConfig())
	conn := dial(t, serveHTTP(t, srv))

	resp := roundTrip(t, conn, Request{Op: "new", Class: "Vector3D", Args: []any{1, 2, 2}})
	a := handleOf(t, resp)
	result := resp.Result.(map[string]any)
	assert.Equal(t, "Vector3D", result["$class"])
	assert.Equal(t, "Vector3D(x=1.000000, y=2.000000, z=2.000000)", result["$str"])

	resp = roundTrip(t, conn, Request{Op: "call", Handle: a, Name: "length"})
	require.True(t, resp.OK)
	assert.InDelta(t, 3.0, resp.Result, 1e-4)

	b := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Location", Kwargs: map[string]any{"z": 1}}))

	resp = roundTrip(t, conn, Request{Op: "op", Handle: a, Name: "+", Args: []any{ref(b)}})
	handleOf(t, resp)
	assert.Equal(t, "Vector3D(x=1.000000, y=2.000000, z=3.000000)", resp.Result.(map[string]any)["$str"])

	resp = roundTrip(t, conn, Request{Op: "op", Name: "*", Args: []any{2, ref(a)}})
	handleOf(t, resp)
	assert.Equal(t, "Vector3D(x=2.000000, y=4.000000, z=4.000000)", resp.Result.(map[string]any)["$str"])

	resp = roundTrip(t, conn, Request{Op: "op", Handle: a, Name: "==", Args: []any{ref(a)}})
	require.True(t, resp.OK)
	assert.Equal(t, true, resp.Result)

	resp = roundTrip(t, conn, Request{Op: "classes"})
	require.True(t, resp.OK)
	assert.Contains(t, resp.Result, "vector_of_vector2D")
}

func TestWebSocketFieldViewsAndInPlaceTransform(t *testing.T) {
	srv := newTestServer(t, testConfig())
	conn := dial(t, serveHTTP(t, srv))

	loc := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Location", Args: []any{0, 0, 5}}))
	tr := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Transform", Kwargs: map[string]any{"location": ref(loc)}}))

	view := handleOf(t, roundTrip(t, conn, Request{Op: "getattr", Handle: tr, Name: "location"}))
	resp := roundTrip(t, conn, Request{Op: "setattr", Handle: view, Name: "x", Args: []any{1}})
	require.True(t, resp.OK, "%+v", resp.Error)
	assert.Nil(t, resp.Result)

	resp = roundTrip(t, conn, Request{Op: "str", Handle: tr})
	require.True(t, resp.OK)
	assert.Equal(t, "Transform(Location(x=1.000000, y=0.000000, z=5.000000), Rotation(pitch=0.000000, yaw=0.000000, roll=0.000000))", resp.Result)

	p := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Vector3D"}))
	q := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Vector3D", Args: []any{1, 1, 1}}))
	resp = roundTrip(t, conn, Request{Op: "call", Handle: tr, Name: "transform", Args: []any{[]any{ref(p), ref(q)}}})
	require.True(t, resp.OK, "%+v", resp.Error)
	assert.Nil(t, resp.Result)

	resp = roundTrip(t, conn, Request{Op: "str", Handle: q})
	assert.Equal(t, "Vector3D(x=2.000000, y=1.000000, z=6.000000)", resp.Result)
}

func TestWebSocketErrors(t *testing.T) {
	srv := newTestServer(t, testConfig())
	conn := dial(t, serveHTTP(t, srv))

	v := handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Vector2D"}))
	require.True(t, roundTrip(t, conn, Request{Op: "release", Handle: v}).OK)

	tests := []struct {
		name string
		req  any
		code int
	}{
		{"unknown class", Request{Op: "new", Class: "Quaternion"}, 1002},
		{"released handle", Request{Op: "getattr", Handle: v, Name: "x"}, 2001},
		{"unknown method", Request{Op: "call", Handle: handleOf(t, roundTrip(t, conn, Request{Op: "new", Class: "Rotation"})), Name: "spin"}, 2003},
		{"bad argument", Request{Op: "new", Class: "Vector2D", Args: []any{"one"}}, 3001},
		{"inline object", Request{Op: "new", Class: "Location", Args: []any{map[string]any{"x": 1}}}, 4001},
		{"missing op", map[string]any{"id": 1}, 4001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := roundTrip(t, conn, tt.req)
			assert.False(t, resp.OK)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, int(resp.Error.Code), resp.Error.Message)
		})
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, 4001, int(resp.Error.Code))
}

func TestWebSocketMaxSessions(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxSessions = 1
	srv := newTestServer(t, cfg)
	url := serveHTTP(t, srv)

	first := dial(t, url)
	require.True(t, roundTrip(t, first, Request{Op: "classes"}).OK)
	assert.Equal(t, 1, srv.SessionCount())

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, first.Close())
	assert.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	second := dial(t, url)
	assert.True(t, roundTrip(t, second, Request{Op: "classes"}).OK)
}

func TestWebSocketMessageTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxMessageSize = 64
	srv := newTestServer(t, cfg)
	conn := dial(t, serveHTTP(t, srv))

	big := Request{Op: "new", Class: "Vector3D", Name: strings.Repeat("x", 128)}
	require.NoError(t, conn.WriteJSON(big))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "oversized frames close the connection")
}

func TestServerLifecycle(t *testing.T) {
	cfg := testConfig()
	cfg.QUIC.Enabled = false
	srv := newTestServer(t, cfg)

	ctx := context.Background()
	require.NoError(t, srv.Start(ctx))
	assert.ErrorIs(t, srv.Start(ctx), ErrServerAlreadyRunning)
	require.NotNil(t, srv.WebSocketAddr())
	assert.Nil(t, srv.QUICAddr())

	conn := dial(t, "ws://"+srv.WebSocketAddr().String()+cfg.WebSocket.Path)
	require.True(t, roundTrip(t, conn, Request{Op: "classes"}).OK)

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(stopCtx))
	assert.Equal(t, 0, srv.SessionCount())
	assert.ErrorIs(t, srv.Stop(stopCtx), ErrServerNotRunning)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	require.NoError(t, srv.Close())
	assert.ErrorIs(t, srv.Start(ctx), ErrServerClosed)
}

type closeRecorder struct {
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestServerRefusesSessionsWhileStopping(t *testing.T) {
	cfg := testConfig()
	cfg.WebSocket.Enabled = false
	cfg.QUIC.Enabled = false
	srv := newTestServer(t, cfg)
	url := serveHTTP(t, srv)

	ctx := context.Background()
	require.NoError(t, srv.Start(ctx))
	require.NoError(t, srv.Stop(ctx))

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	conn := &closeRecorder{}
	cs, err := srv.openSession("websocket", "127.0.0.1:1", conn)
	require.NoError(t, err)
	assert.False(t, srv.admit(cs))
	assert.True(t, conn.closed)
	assert.Equal(t, 0, srv.SessionCount())

	require.NoError(t, srv.Start(ctx))
	cs, err = srv.openSession("websocket", "127.0.0.1:2", &closeRecorder{})
	require.NoError(t, err)
	assert.True(t, srv.admit(cs))
	assert.Equal(t, 1, srv.SessionCount())
	srv.closeSession(cs)
	require.NoError(t, srv.Stop(ctx))
}

func TestServerRun(t *testing.T) {
	cfg := testConfig()
	cfg.QUIC.Enabled = false
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	assert.Eventually(t, srv.Running, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
