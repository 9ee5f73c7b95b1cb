// Package service defines the mock SDK data services: the static catalog
// mapping each listening port to a service identity, the canned sample
// payload each service streams, and the per-connection session handler
// that drives the handshake and streaming protocol.
//
// Five production services (preview, sensor, raw, configurable, console)
// bind the canonical SDK ports. Any other port resolves to the
// diagnostic service, which replies with deliberately malformed frames
// selected by the content of the client's channel-list message.
package service
