package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/mocapkit/motionmock/pkg/logging"
	"github.com/mocapkit/motionmock/pkg/service"
	"github.com/mocapkit/motionmock/pkg/wire"
)

// DefaultHost is the interface the listeners bind by default.
const DefaultHost = "localhost"

// Config configures a Set. The zero value serves the full canonical
// catalog on localhost with time-seeded jitter.
type Config struct {
	// Host is the bind address, without port.
	Host string

	// Services lists the descriptors to serve, one listener each.
	// Defaults to the full catalog (five production services plus the
	// diagnostic port). A descriptor with Port 0 binds an ephemeral
	// port, which tests use to avoid colliding with installed software.
	Services []service.Descriptor

	// Seed drives the jitter RNG. Zero selects a time-derived seed;
	// any other value makes fragmentation reproducible. Each port's
	// worker derives its own source from Seed so ports stay independent.
	Seed int64

	// Session carries the per-session tunables (sample count, idle
	// delay). The logger in it is overridden by Logger below.
	Session service.SessionConfig

	// ChunkDelay and SamplePeriod tune the jitter transmitter. Zero
	// values keep the wire package defaults.
	ChunkDelay   time.Duration
	SamplePeriod time.Duration

	// Logger receives listener and session events. Nil disables logging.
	Logger *slog.Logger
}

// Set is a group of mock service listeners with a shared lifecycle.
type Set struct {
	cfg Config
	log *slog.Logger

	servers []*server
	wg      sync.WaitGroup
	done    chan struct{}

	mu      sync.Mutex
	started bool
}

// server is one listener plus the session machinery its worker reuses.
type server struct {
	desc   service.Descriptor
	ln     net.Listener
	jitter *wire.Jitter
}

// New builds a Set from cfg without binding anything.
func New(cfg Config) *Set {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if len(cfg.Services) == 0 {
		for _, port := range service.Ports() {
			cfg.Services = append(cfg.Services, service.Lookup(port))
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	cfg.Session.Logger = log
	return &Set{cfg: cfg, log: log, done: make(chan struct{})}
}

// Start binds every listener and launches its worker. A bind failure
// tears down any listeners already bound and aborts the whole harness;
// listener infrastructure is the one error class that is fatal here.
func (s *Set) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("harness already started")
	}

	for i, desc := range s.cfg.Services {
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, desc.Port)
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			for _, srv := range s.servers {
				srv.ln.Close() //nolint:errcheck
			}
			s.servers = nil
			return fmt.Errorf("listen %s (%s): %w", addr, desc.Name, err)
		}

		// Ephemeral binds resolve their real port now so sessions and
		// logs report it.
		if desc.Port == 0 {
			desc.Port = ln.Addr().(*net.TCPAddr).Port
		}

		jopts := []wire.JitterOption{}
		if s.cfg.ChunkDelay > 0 {
			jopts = append(jopts, wire.WithChunkDelay(s.cfg.ChunkDelay))
		}
		if s.cfg.SamplePeriod > 0 {
			jopts = append(jopts, wire.WithSamplePeriod(s.cfg.SamplePeriod))
		}
		rng := rand.New(rand.NewSource(s.cfg.Seed + int64(i)))

		srv := &server{desc: desc, ln: ln, jitter: wire.NewJitter(rng, jopts...)}
		s.servers = append(s.servers, srv)
	}

	for _, srv := range s.servers {
		s.wg.Add(1)
		go s.serve(srv)
		s.log.Info("listening", "service", srv.desc.Name, "addr", srv.ln.Addr().String())
	}

	go func() {
		s.wg.Wait()
		close(s.done)
	}()

	s.started = true
	return nil
}

// serve is one port's worker: a strictly sequential accept loop. The
// next client to the same port waits until the current session returns.
func (s *Set) serve(srv *server) {
	defer s.wg.Done()

	for {
		conn, err := srv.ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				s.log.Error("accept failed", "service", srv.desc.Name, "err", err)
			}
			return
		}
		service.NewSession(conn, srv.desc, srv.jitter, s.cfg.Session).Run()
	}
}

// Addrs returns the bound listener addresses in Services order. Only
// valid after Start.
func (s *Set) Addrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]net.Addr, len(s.servers))
	for i, srv := range s.servers {
		addrs[i] = srv.ln.Addr()
	}
	return addrs
}

// Stop closes every listener and waits for the workers to return. An
// in-flight session is not interrupted; its worker exits after the
// session's bounded stream finishes or its peer disconnects.
func (s *Set) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	for _, srv := range s.servers {
		srv.ln.Close() //nolint:errcheck
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("harness stopped")
}

// Join blocks until every worker has exited or timeout elapses,
// reporting whether the harness is fully down. The driver polls this in
// standalone mode so it stays signal-responsive.
func (s *Set) Join(timeout time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
