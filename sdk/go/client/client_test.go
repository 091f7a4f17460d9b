package client

import (
	"context"
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/geombridge/internal/binding"
	"github.com/zeusync/geombridge/internal/config"
	"github.com/zeusync/geombridge/internal/core/observability/log"
	"github.com/zeusync/geombridge/internal/server"
)

func newConnectedClient(t *testing.T) *Client {
	t.Helper()
	registry, err := binding.NewRegistry()
	require.NoError(t, err)

	srv := server.NewServer(config.Default(), registry, log.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := DefaultClientConfig()
	cfg.ServerURL = "ws" + strings.TrimPrefix(ts.URL, "http") + "/bridge"
	cfg.LogLevel = log.LevelError

	c := NewClient(cfg)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	c := newConnectedClient(t)
	assert.True(t, c.IsConnected())
	assert.ErrorIs(t, c.Connect(ctx), ErrAlreadyConnected)

	v, err := c.New(ctx, "Vector2D", 1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, "Vector2D", v.Class)
	assert.Equal(t, "Vector2D(x=1.000000, y=2.000000)", v.String())

	sum, err := c.Operate(ctx, "+", v, v)
	require.NoError(t, err)
	assert.Equal(t, "Vector2D(x=2.000000, y=4.000000)", sum.(Object).Str)

	scaled, err := c.Operate(ctx, "*", 3.0, v)
	require.NoError(t, err)
	assert.Equal(t, "Vector2D(x=3.000000, y=6.000000)", scaled.(Object).Str)

	require.NoError(t, c.SetAttr(ctx, v, "x", 4.0))
	x, err := c.GetAttr(ctx, v, "x")
	require.NoError(t, err)
	assert.Equal(t, 4.0, x)

	length, err := c.Call(ctx, v, "length")
	require.NoError(t, err)
	assert.InDelta(t, 4.4721, length, 1e-3)

	s, err := c.Str(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "Vector2D(x=4.000000, y=2.000000)", s)

	classes, err := c.Classes(ctx)
	require.NoError(t, err)
	assert.Contains(t, classes, "GeoLocation")

	require.NoError(t, c.Release(ctx, v))
	_, err = c.Str(ctx, v)
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 2001, remote.Code)
}

func TestClientNonFiniteFloats(t *testing.T) {
	ctx := context.Background()
	c := newConnectedClient(t)

	v, err := c.New(ctx, "Vector2D", 1.0, -1.0)
	require.NoError(t, err)

	quot, err := c.Operate(ctx, "/", v, 0.0)
	require.NoError(t, err)
	assert.Equal(t, "Vector2D(x=inf, y=-inf)", quot.(Object).Str)

	x, err := c.GetAttr(ctx, quot.(Object), "x")
	require.NoError(t, err)
	assert.True(t, math.IsInf(x.(float64), 1))

	require.NoError(t, c.SetAttr(ctx, v, "y", math.NaN()))
	y, err := c.GetAttr(ctx, v, "y")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(y.(float64)))
}

func TestClientTransformList(t *testing.T) {
	ctx := context.Background()
	c := newConnectedClient(t)

	loc, err := c.New(ctx, "Location", 1.0, 0.0, 0.0)
	require.NoError(t, err)
	tr, err := c.NewWithKwargs(ctx, "Transform", map[string]any{"location": loc})
	require.NoError(t, err)

	p, err := c.New(ctx, "Vector3D")
	require.NoError(t, err)

	out, err := c.Call(ctx, tr, "transform", []Object{p})
	require.NoError(t, err)
	assert.Nil(t, out)

	s, err := c.Str(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Vector3D(x=1.000000, y=0.000000, z=0.000000)", s)

	vertices, err := c.Call(ctx, mustBox(t, c), "get_local_vertices")
	require.NoError(t, err)
	require.Len(t, vertices, 8)
	assert.Equal(t, "Location", vertices.([]any)[0].(Object).Class)
}

func mustBox(t *testing.T, c *Client) Object {
	t.Helper()
	box, err := c.New(context.Background(), "BoundingBox")
	require.NoError(t, err)
	return box
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()

	c := NewClient(Config{})
	assert.ErrorIs(t, c.Connect(ctx), ErrInvalidConfig)
	_, err := c.Classes(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Disconnect(), ErrNotConnected)

	connected := newConnectedClient(t)
	require.NoError(t, connected.Close())
	assert.False(t, connected.IsConnected())
	_, err = connected.Classes(ctx)
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.ErrorIs(t, connected.Connect(ctx), ErrClientClosed)
}
