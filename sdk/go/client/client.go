// Package client is a Go SDK for the geombridge WebSocket endpoint.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/geombridge/internal/core/observability/log"
	"github.com/zeusync/geombridge/internal/server"
)

// Client holds one bridge session. Calls are serialized over the single
// connection.
type Client struct {
	conn   *websocket.Conn
	callMu sync.Mutex
	nextID atomic.Uint64

	// Lifecycle
	connected int32 // atomic bool
	closed    int32 // atomic bool

	config Config
	logger log.Log
}

// Config holds configuration for the client
type Config struct {
	ServerURL      string
	ConnectTimeout time.Duration
	CallTimeout    time.Duration
	LogLevel       log.Level
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() Config {
	return Config{
		ServerURL:      "ws://127.0.0.1:8080/bridge",
		ConnectTimeout: 10 * time.Second,
		CallTimeout:    10 * time.Second,
		LogLevel:       log.LevelInfo,
	}
}

// Object is a handle to a value living in the server session.
type Object struct {
	Handle string
	Class  string
	Str    string
}

func (o Object) String() string {
	return o.Str
}

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		logger: log.New(config.LogLevel).With(log.String("component", "client")),
	}
}

// Connect opens the WebSocket connection and with it a new server session.
func (c *Client) Connect(ctx context.Context) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrClientClosed
	}
	if c.config.ServerURL == "" {
		return ErrInvalidConfig
	}
	if !atomic.CompareAndSwapInt32(&c.connected, 0, 1) {
		return ErrAlreadyConnected
	}

	c.logger.Info("Connecting to server", log.String("url", c.config.ServerURL))

	dialCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.config.ServerURL, nil)
	if err != nil {
		atomic.StoreInt32(&c.connected, 0)
		c.logger.Error("Failed to connect to server",
			log.String("url", c.config.ServerURL),
			log.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrConnectionTimeout
		}
		return err
	}

	c.conn = conn
	c.logger.Info("Connected to server", log.String("remote_addr", conn.RemoteAddr().String()))
	return nil
}

// Disconnect closes the connection. The server drops every object of the
// session.
func (c *Client) Disconnect() error {
	if !atomic.CompareAndSwapInt32(&c.connected, 1, 0) {
		return ErrNotConnected
	}

	c.logger.Info("Disconnecting from server")

	c.callMu.Lock()
	defer c.callMu.Unlock()

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

// Close disconnects if needed and makes the client unusable.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&c.connected) == 1 {
		return c.Disconnect()
	}
	return nil
}

func (c *Client) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

// Do sends req and waits for its response. The request ID is assigned here.
func (c *Client) Do(ctx context.Context, req server.Request) (any, error) {
	if atomic.LoadInt32(&c.closed) == 1 {
		return nil, ErrClientClosed
	}
	if atomic.LoadInt32(&c.connected) == 0 {
		return nil, ErrNotConnected
	}

	id := strconv.FormatUint(c.nextID.Add(1), 10)
	req.ID = json.RawMessage(id)
	req.Args = encodeArgs(req.Args)
	if len(req.Kwargs) > 0 {
		kwargs := make(map[string]any, len(req.Kwargs))
		for k, v := range req.Kwargs {
			kwargs[k] = encodeArg(v)
		}
		req.Kwargs = kwargs
	}

	c.callMu.Lock()
	defer c.callMu.Unlock()

	deadline := time.Now().Add(c.config.CallTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Op, err)
	}

	var resp server.Response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("receive %s: %w", req.Op, err)
	}
	if string(resp.ID) != id {
		return nil, fmt.Errorf("%w: response id %s for request %s", ErrInvalidMessage, resp.ID, id)
	}
	if !resp.OK {
		if resp.Error == nil {
			return nil, fmt.Errorf("%w: failed response without error", ErrInvalidMessage)
		}
		return nil, &RemoteError{Code: int(resp.Error.Code), Message: resp.Error.Message}
	}

	c.logger.Debug("Call completed", log.String("op", req.Op), log.String("id", id))
	return decodeResult(resp.Result), nil
}

// New constructs an instance of class on the server.
func (c *Client) New(ctx context.Context, class string, args ...any) (Object, error) {
	return c.object(c.Do(ctx, server.Request{Op: "new", Class: class, Args: args}))
}

// NewWithKwargs is New with keyword arguments.
func (c *Client) NewWithKwargs(ctx context.Context, class string, kwargs map[string]any) (Object, error) {
	return c.object(c.Do(ctx, server.Request{Op: "new", Class: class, Kwargs: kwargs}))
}

func (c *Client) GetAttr(ctx context.Context, obj Object, name string) (any, error) {
	return c.Do(ctx, server.Request{Op: "getattr", Handle: obj.Handle, Name: name})
}

func (c *Client) SetAttr(ctx context.Context, obj Object, name string, value any) error {
	_, err := c.Do(ctx, server.Request{Op: "setattr", Handle: obj.Handle, Name: name, Args: []any{value}})
	return err
}

func (c *Client) Call(ctx context.Context, obj Object, method string, args ...any) (any, error) {
	return c.Do(ctx, server.Request{Op: "call", Handle: obj.Handle, Name: method, Args: args})
}

// Operate evaluates lhs op rhs. Either side may be a plain number.
func (c *Client) Operate(ctx context.Context, op string, lhs, rhs any) (any, error) {
	if obj, ok := lhs.(Object); ok {
		return c.Do(ctx, server.Request{Op: "op", Handle: obj.Handle, Name: op, Args: []any{rhs}})
	}
	return c.Do(ctx, server.Request{Op: "op", Name: op, Args: []any{lhs, rhs}})
}

// Str returns the server-side printable form of obj.
func (c *Client) Str(ctx context.Context, obj Object) (string, error) {
	v, err := c.Do(ctx, server.Request{Op: "str", Handle: obj.Handle})
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Release lets the server forget obj.
func (c *Client) Release(ctx context.Context, obj Object) error {
	_, err := c.Do(ctx, server.Request{Op: "release", Handle: obj.Handle})
	return err
}

// Classes lists the classes the server exports.
func (c *Client) Classes(ctx context.Context) ([]string, error) {
	v, err := c.Do(ctx, server.Request{Op: "classes"})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Client) object(v any, err error) (Object, error) {
	if err != nil {
		return Object{}, err
	}
	obj, ok := v.(Object)
	if !ok {
		return Object{}, fmt.Errorf("%w: expected object, got %T", ErrInvalidMessage, v)
	}
	return obj, nil
}

func encodeArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = encodeArg(a)
	}
	return out
}

func encodeArg(v any) any {
	switch t := v.(type) {
	case Object:
		return server.Ref{Ref: t.Handle}
	case []Object:
		out := make([]any, len(t))
		for i, o := range t {
			out[i] = server.Ref{Ref: o.Handle}
		}
		return out
	case []any:
		return encodeArgs(t)
	case float64:
		return server.EncodeFloat(t)
	case float32:
		return server.EncodeFloat(float64(t))
	default:
		return v
	}
}

func decodeResult(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if s, ok := t["$float"].(string); ok {
			if f, err := server.DecodeFloat(s); err == nil {
				return f
			}
			return t
		}
		handle, ok := t["$ref"].(string)
		if !ok {
			return t
		}
		class, _ := t["$class"].(string)
		str, _ := t["$str"].(string)
		return Object{Handle: handle, Class: class, Str: str}
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = decodeResult(item)
		}
		return out
	default:
		return v
	}
}
