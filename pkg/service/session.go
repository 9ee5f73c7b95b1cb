package service

import (
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/mocapkit/motionmock/pkg/logging"
	"github.com/mocapkit/motionmock/pkg/wire"
)

// DefaultSampleCount is the number of sample frames streamed per session.
const DefaultSampleCount = 100

// DefaultIdleDelay is how long the diagnostic service holds a connection
// open after its single reply when the client did not request a timeout.
const DefaultIdleDelay = 250 * time.Millisecond

// SessionConfig carries the tunable parts of a session. The zero value
// selects the defaults above.
type SessionConfig struct {
	// Samples is the number of sample frames to stream. Zero means
	// DefaultSampleCount.
	Samples int

	// IdleDelay is the diagnostic hold-open delay. Zero means
	// DefaultIdleDelay.
	IdleDelay time.Duration

	// Logger receives session lifecycle events. Nil disables logging.
	Logger *slog.Logger
}

// Session drives one accepted connection through its service's handshake
// and streaming protocol. Created on accept, discarded when Run returns.
type Session struct {
	id     string
	conn   net.Conn
	desc   Descriptor
	jitter *wire.Jitter
	cfg    SessionConfig
	log    *slog.Logger
}

// NewSession wraps an accepted connection. The jitter transmitter is
// owned by the caller and reused across sessions on the same port;
// sessions on one port are sequential so that is safe.
func NewSession(conn net.Conn, desc Descriptor, jitter *wire.Jitter, cfg SessionConfig) *Session {
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSampleCount
	}
	if cfg.IdleDelay <= 0 {
		cfg.IdleDelay = DefaultIdleDelay
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		conn:   conn,
		desc:   desc,
		jitter: jitter,
		cfg:    cfg,
		log: log.With(
			"session", id,
			"service", desc.Name,
			"port", desc.Port,
			"remote", conn.RemoteAddr().String(),
		),
	}
}

// Run executes the full session protocol and closes the connection.
// Protocol order within one session, always:
//
//	identity frame -> [channel list read] -> device list frame ->
//	sample stream | diagnostic reply
//
// Transport errors end the session silently: a client hanging up mid-
// stream is an expected outcome for a test harness, not a fault.
func (s *Session) Run() {
	defer s.conn.Close() //nolint:errcheck

	s.log.Debug("session started")

	if err := wire.WriteFrame(s.conn, IdentityDocument(s.desc.Name)); err != nil {
		s.log.Debug("session ended", "stage", "identity", "err", err)
		return
	}

	// Configurable services gate on one channel-list frame before the
	// device list. Content is ignored for production services; the
	// diagnostic service picks its reply from it.
	var channelList []byte
	if s.desc.Configurable {
		msg, err := wire.ReadFrame(s.conn)
		if err != nil {
			s.log.Debug("session ended", "stage", "channel-list", "err", err)
			return
		}
		channelList = msg
	}

	if err := wire.WriteFrame(s.conn, DeviceListDocument()); err != nil {
		s.log.Debug("session ended", "stage", "device-list", "err", err)
		return
	}

	if s.desc.Diagnostic {
		s.runDiagnostic(channelList)
		return
	}

	s.stream()
}

// stream emits the canned sample for a bounded number of iterations,
// each handed to the jitter transmitter for duplication and chunking.
func (s *Session) stream() {
	frame := wire.Encode(s.desc.Sample())

	for i := 0; i < s.cfg.Samples; i++ {
		if err := s.jitter.Transmit(s.conn, frame); err != nil {
			s.log.Debug("session ended", "stage", "stream", "sample", i, "err", err)
			return
		}
	}
	s.log.Debug("session complete", "samples", s.cfg.Samples)
}
