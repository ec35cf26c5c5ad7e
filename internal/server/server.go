package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/quic-go/quic-go/http3"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
)

// shutdownWait bounds how long Stop waits for the serve loop to return.
const shutdownWait = time.Second

// Server serves the evaluation routes over HTTP/3.
type Server struct {
	srv    *http3.Server
	addr   string
	conn   net.PacketConn
	served chan error
}

// New creates a server bound to addr with the given TLS config and handler.
func New(addr string, tlsCfg *tls.Config, h http.Handler) *Server {
	return &Server{srv: &http3.Server{Addr: addr, TLSConfig: tlsCfg, Handler: h}, addr: addr}
}

// NewFromConfig builds a server from the serve settings in cfg: listen
// address, key pair, request size limit and access logging.
func NewFromConfig(cfg *cli.Config) (*Server, error) {
	tlsCfg, err := TLSConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg.ServerAddr, tlsCfg, NewHandler(cfg.MaxBodyBytes, cfg.Verbose)), nil
}

// Start begins serving in the background and returns the bound address,
// which differs from the requested one when its port is 0.
func (s *Server) Start() (string, error) {
	if s.conn != nil {
		return "", errors.New("server already started")
	}
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.conn = conn
	s.served = make(chan error, 1)
	go func() { s.served <- s.srv.Serve(conn) }()
	return conn.LocalAddr().String(), nil
}

// Stop closes the listener and waits briefly for in-flight requests.
// Stopping a server that is not running is a no-op.
func (s *Server) Stop() error {
	if s.conn == nil {
		return nil
	}
	err := s.srv.Close()
	_ = s.conn.Close()
	s.conn = nil
	select {
	case <-s.served:
	case <-time.After(shutdownWait):
	}
	return err
}

// Client posts expressions to a running server.
type Client struct {
	http *http.Client
	base string
}

// NewClient returns a client for the server at addr. insecure skips
// certificate verification, for self-signed development servers.
func NewClient(addr string, insecure bool, timeout time.Duration) *Client {
	tlsCfg := &tls.Config{InsecureSkipVerify: insecure, MinVersion: tls.VersionTLS13}
	tr := &http3.Transport{TLSClientConfig: tlsCfg}
	return &Client{http: &http.Client{Transport: tr, Timeout: timeout}, base: "https://" + addr}
}

// Eval sends source to POST /eval. Evaluation failures come back in the
// response rather than as an error.
func (c *Client) Eval(ctx context.Context, source string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/eval", bytes.NewBufferString(source))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return nil, fmt.Errorf("unexpected response %s", resp.Status)
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// Close releases the client's QUIC connections.
func (c *Client) Close() {
	if tr, ok := c.http.Transport.(*http3.Transport); ok {
		_ = tr.Close()
	}
}
