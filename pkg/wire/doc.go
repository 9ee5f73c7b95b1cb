// Package wire implements the length-prefixed binary framing shared by
// every SDK data service, plus the jitter transmitter that fragments
// outbound frames to stress client reassembly.
//
// Wire format for every message in both directions:
//
//	[uint32 length, big-endian][length bytes of body]
//
// The codec enforces a sanity ceiling on server-side reads only; the
// server is free to write oversized or truncated frames on purpose (the
// diagnostic service exists to do exactly that).
package wire
