package server

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"net"
	"sync"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/zeusync/geombridge/internal/core/observability/log"
)

// ALPN is the application protocol negotiated on QUIC connections.
const ALPN = "geombridge"

// QUIC application error codes sent when the server closes a connection.
const (
	quicCodeNoError            quic.ApplicationErrorCode = 0
	quicCodeMaxSessionsReached quic.ApplicationErrorCode = 0x101
)

// GenerateSelfSignedTLS creates a throwaway certificate for localhost.
func GenerateSelfSignedTLS() (*tls.Config, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			Organization: []string{"geombridge"},
		},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:              []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{certDER},
			PrivateKey:  privateKey,
		}},
		NextProtos: []string{ALPN},
		MinVersion: tls.VersionTLS13,
	}, nil
}

// quicConn adapts a QUIC connection to io.Closer for Stop.
type quicConn struct {
	*quic.Conn
}

func (c quicConn) Close() error {
	return c.CloseWithError(quicCodeNoError, "server shutting down")
}

func (s *Server) acceptQUIC(ln *quic.Listener) {
	defer s.workerGroup.Done()

	s.logger.Debug("Connection acceptor started", log.String("transport", "quic"))
	defer s.logger.Debug("Connection acceptor stopped", log.String("transport", "quic"))

	for {
		conn, err := ln.Accept(context.Background())
		if err != nil {
			if errors.Is(err, quic.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("Failed to accept connection", log.Error(err))
			continue
		}

		cs, err := s.openSession("quic", conn.RemoteAddr().String(), quicConn{conn})
		if err != nil {
			_ = conn.CloseWithError(quicCodeMaxSessionsReached, err.Error())
			continue
		}
		if !s.admit(cs) {
			continue
		}

		s.workerGroup.Add(1)
		go s.serveQUIC(conn, cs)
	}
}

// serveQUIC accepts streams until the connection closes. Requests from all
// streams of one connection run one at a time against the shared session.
func (s *Server) serveQUIC(conn *quic.Conn, cs *connSession) {
	defer s.workerGroup.Done()
	defer s.closeSession(cs)

	logger := s.logger.With(log.String("session_id", cs.ID()))
	var mu sync.Mutex
	var streams sync.WaitGroup
	defer streams.Wait()

	for {
		stream, err := conn.AcceptStream(conn.Context())
		if err != nil {
			logger.Debug("Connection finished", log.Error(err))
			return
		}

		streams.Add(1)
		go func() {
			defer streams.Done()
			s.serveStream(stream, cs, &mu, logger)
		}()
	}
}

// serveStream reads newline-delimited request frames and writes one
// response line per request.
func (s *Server) serveStream(stream *quic.Stream, cs *connSession, mu *sync.Mutex, logger log.Log) {
	defer func() { _ = stream.Close() }()

	maxSize := s.config.Limits.MaxMessageSize
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, min(4096, maxSize+1)), maxSize+1)

	for {
		if timeout := s.config.Limits.ReadTimeout; timeout > 0 {
			_ = stream.SetReadDeadline(time.Now().Add(timeout))
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		mu.Lock()
		resp := s.dispatcher.handle(cs.Session, line)
		mu.Unlock()

		if _, err := stream.Write(append(resp, '\n')); err != nil {
			logger.Debug("Failed to write response", log.Error(err))
			return
		}
	}

	if err := scanner.Err(); errors.Is(err, bufio.ErrTooLong) {
		logger.Warn("Frame exceeds size limit", log.Int("max_message_size", maxSize))
		resp := s.dispatcher.encode(&Response{Error: errorBody(ErrMessageTooLarge)})
		_, _ = stream.Write(append(resp, '\n'))
	}
}
