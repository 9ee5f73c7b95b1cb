// Package harness owns the lifecycle of the mock service listeners: one
// TCP listener and one worker goroutine per service port, with
// start/stop/join semantics, plus the subprocess runner the driver uses
// to execute a client test command while the services are up.
//
// Each worker serves one connection's full session before accepting the
// next; parallelism comes from running the ports concurrently, not from
// concurrent sessions within a port.
package harness
