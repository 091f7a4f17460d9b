package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quic-go/quic-go"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/geombridge/internal/bridge"
	"github.com/zeusync/geombridge/internal/config"
	"github.com/zeusync/geombridge/internal/core/observability/log"
)

// Server exposes a bridge registry to remote hosts over WebSocket and QUIC.
// Every connection gets its own bridge.Session.
type Server struct {
	registry   *bridge.Registry
	dispatcher *dispatcher

	// Session management
	sessions     sync.Map // map[string]*connSession
	sessionCount int64    // atomic

	// Transports
	httpServer   *http.Server
	wsListener   net.Listener
	quicListener *quic.Listener

	// Server state
	running  int32 // atomic bool
	draining int32 // atomic bool
	closed   int32 // atomic bool

	config config.Config
	logger log.Log

	workerGroup sync.WaitGroup
}

// connSession ties a bridge session to the connection serving it.
type connSession struct {
	*bridge.Session
	transport   string
	remoteAddr  string
	connectedAt time.Time
	conn        io.Closer
}

func NewServer(cfg config.Config, registry *bridge.Registry, logger log.Log) *Server {
	if logger == nil {
		logger = log.Provide()
	}
	logger = logger.With(log.String("component", "server"))

	s := &Server{
		registry: registry,
		dispatcher: &dispatcher{
			maxMessageSize: cfg.Limits.MaxMessageSize,
			logger:         logger,
		},
		config: cfg,
		logger: logger,
	}

	s.logger.Info("Server created",
		log.Int("max_sessions", cfg.Limits.MaxSessions),
		log.Int("classes", len(registry.Classes())))

	return s
}

// Start opens the enabled transports and returns once they are listening.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	atomic.StoreInt32(&s.draining, 0)

	s.logger.Info("Starting server")

	if s.config.WebSocket.Enabled {
		if err := s.startWebSocket(); err != nil {
			s.abortStart()
			return err
		}
	}

	if s.config.QUIC.Enabled {
		if err := s.startQUIC(); err != nil {
			s.abortStart()
			return err
		}
	}

	s.logger.Info("Server started successfully")
	return nil
}

func (s *Server) abortStart() {
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.quicListener != nil {
		_ = s.quicListener.Close()
	}
	atomic.StoreInt32(&s.running, 0)
}

func (s *Server) startWebSocket() error {
	ln, err := net.Listen("tcp", s.config.WebSocket.Addr)
	if err != nil {
		s.logger.Error("Failed to create listener", log.String("transport", "websocket"), log.Error(err))
		return fmt.Errorf("%w: %v", ErrListenerFailed, err)
	}

	s.wsListener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("WebSocket server failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening",
		log.String("transport", "websocket"),
		log.String("addr", ln.Addr().String()),
		log.String("path", s.config.WebSocket.Path))
	return nil
}

func (s *Server) startQUIC() error {
	tlsConf, err := s.quicTLSConfig()
	if err != nil {
		return err
	}

	ln, err := quic.ListenAddr(s.config.QUIC.Addr, tlsConf, &quic.Config{
		MaxIdleTimeout:  s.config.QUIC.IdleTimeout,
		KeepAlivePeriod: s.config.QUIC.IdleTimeout / 2,
	})
	if err != nil {
		s.logger.Error("Failed to create listener", log.String("transport", "quic"), log.Error(err))
		return fmt.Errorf("%w: %v", ErrListenerFailed, err)
	}
	s.quicListener = ln

	s.workerGroup.Add(1)
	go s.acceptQUIC(ln)

	s.logger.Info("Server listening",
		log.String("transport", "quic"),
		log.String("addr", ln.Addr().String()))
	return nil
}

func (s *Server) quicTLSConfig() (*tls.Config, error) {
	if s.config.QUIC.CertFile == "" {
		s.logger.Warn("No certificate configured, using a self-signed one")
		return GenerateSelfSignedTLS()
	}

	cert, err := tls.LoadX509KeyPair(s.config.QUIC.CertFile, s.config.QUIC.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{ALPN},
		MinVersion:   tls.VersionTLS13,
	}, nil
}

// Stop closes both listeners and every open session, then waits for the
// connection handlers to return or ctx to expire.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}
	atomic.StoreInt32(&s.draining, 1)

	s.logger.Info("Stopping server", log.Int64("sessions", atomic.LoadInt64(&s.sessionCount)))

	g, gctx := errgroup.WithContext(ctx)
	if s.httpServer != nil {
		g.Go(func() error {
			return s.httpServer.Shutdown(gctx)
		})
	}
	if s.quicListener != nil {
		g.Go(s.quicListener.Close)
	}
	err := g.Wait()

	s.sessions.Range(func(_, value any) bool {
		if cs, ok := value.(*connSession); ok {
			_ = cs.conn.Close()
		}
		return true
	})

	done := make(chan struct{})
	go func() {
		s.workerGroup.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Shutdown deadline reached with handlers still running")
		if err == nil {
			err = ctx.Err()
		}
	}

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if it is running and marks it unusable.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}

	s.logger.Info("Closing server")

	if atomic.LoadInt32(&s.running) == 1 {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Limits.ShutdownGrace)
		defer cancel()
		return s.Stop(ctx)
	}
	return nil
}

// Run starts the server and blocks until ctx is done, then stops it within
// the configured shutdown grace period.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), s.config.Limits.ShutdownGrace)
	defer cancel()
	return s.Stop(stopCtx)
}

func (s *Server) Running() bool {
	return atomic.LoadInt32(&s.running) == 1
}

// WebSocketAddr returns the bound WebSocket address, or nil.
func (s *Server) WebSocketAddr() net.Addr {
	if s.wsListener == nil {
		return nil
	}
	return s.wsListener.Addr()
}

// QUICAddr returns the bound QUIC address, or nil.
func (s *Server) QUICAddr() net.Addr {
	if s.quicListener == nil {
		return nil
	}
	return s.quicListener.Addr()
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	return int(atomic.LoadInt64(&s.sessionCount))
}

// openSession reserves a session slot for a new connection.
func (s *Server) openSession(transport, remoteAddr string, conn io.Closer) (*connSession, error) {
	for {
		n := atomic.LoadInt64(&s.sessionCount)
		if int(n) >= s.config.Limits.MaxSessions {
			s.logger.Warn("Maximum sessions reached, rejecting connection",
				log.String("transport", transport),
				log.String("remote_addr", remoteAddr))
			return nil, ErrMaxSessionsReached
		}
		if atomic.CompareAndSwapInt64(&s.sessionCount, n, n+1) {
			break
		}
	}

	cs := &connSession{
		Session:     bridge.NewSession(s.registry, s.logger),
		transport:   transport,
		remoteAddr:  remoteAddr,
		connectedAt: time.Now(),
		conn:        conn,
	}
	s.sessions.Store(cs.ID(), cs)

	s.logger.Info("Session opened",
		log.String("session_id", cs.ID()),
		log.String("transport", transport),
		log.String("remote_addr", remoteAddr),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))
	return cs, nil
}

// accepting reports whether new connections may be served.
func (s *Server) accepting() bool {
	return atomic.LoadInt32(&s.closed) == 0 && atomic.LoadInt32(&s.draining) == 0
}

// admit keeps cs only while the server is accepting. A session opened after
// Stop has swept the session map is closed here instead.
func (s *Server) admit(cs *connSession) bool {
	if s.accepting() {
		return true
	}
	s.logger.Debug("Rejecting session opened during shutdown", log.String("session_id", cs.ID()))
	_ = cs.conn.Close()
	s.closeSession(cs)
	return false
}

func (s *Server) closeSession(cs *connSession) {
	if _, loaded := s.sessions.LoadAndDelete(cs.ID()); !loaded {
		return
	}
	atomic.AddInt64(&s.sessionCount, -1)
	cs.Close()

	s.logger.Info("Session closed",
		log.String("session_id", cs.ID()),
		log.String("transport", cs.transport),
		log.Duration("duration", time.Since(cs.connectedAt)),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))
}
