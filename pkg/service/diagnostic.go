package service

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/mocapkit/motionmock/pkg/wire"
)

// Diagnostic reply selection keywords, checked against the raw bytes of
// the client's channel-list message in this exact priority order. A
// message matching several keywords gets the first match; a message
// matching none gets no reply at all.
var diagnosticKeywords = []struct {
	keyword string
	reply   func() []byte
}{
	{"header", truncatedHeaderReply},
	{"payload", mismatchedPayloadReply},
	{"length", oversizedLengthReply},
	{"xml", brokenXMLReply},
}

// runDiagnostic is the diagnostic service's replacement for the sample
// stream: one deliberately broken reply chosen from the channel-list
// content, then either a blocking read the client must time out of, or a
// short idle before close. The reply bytes below go on the wire exactly
// as built; except for the xml case they are not valid frames, which is
// the point.
func (s *Session) runDiagnostic(channelList []byte) {
	var reply []byte
	for _, d := range diagnosticKeywords {
		if bytes.Contains(channelList, []byte(d.keyword)) {
			reply = d.reply()
			break
		}
	}
	if reply == nil {
		s.log.Debug("diagnostic request matched no keyword, closing without reply")
		return
	}

	if _, err := s.conn.Write(reply); err != nil {
		s.log.Debug("session ended", "stage", "diagnostic", "err", err)
		return
	}

	if bytes.Contains(channelList, []byte("timeout")) {
		// Hold the read open so the client has to enforce its own
		// timeout. The client never sends anything; this returns when
		// it gives up and disconnects.
		s.log.Debug("diagnostic holding for client timeout")
		_, _ = wire.ReadFrame(s.conn)
		return
	}

	time.Sleep(s.cfg.IdleDelay)
}

// truncatedHeaderReply is 2 raw bytes where the client expects a 4-byte
// length prefix: an under-sized header.
func truncatedHeaderReply() []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], 1)
	return b[:]
}

// mismatchedPayloadReply declares a 40-byte body but carries only 20
// bytes of record data.
func mismatchedPayloadReply() []byte {
	return declaredLengthReply(40)
}

// oversizedLengthReply declares a body one past the sanity ceiling.
func oversizedLengthReply() []byte {
	return declaredLengthReply(wire.MaxFrameSize + 1)
}

// brokenXMLReply is a well-formed frame whose body is a syntactically
// incomplete XML fragment.
func brokenXMLReply() []byte {
	return wire.Encode([]byte("<?xm"))
}

// declaredLengthReply builds a frame-shaped reply with an arbitrary
// declared length over a fixed 20-byte big-endian record (counter,
// channel count, three floats).
func declaredLengthReply(declared uint32) []byte {
	var buf bytes.Buffer
	writeBE32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	writeBE32(declared)
	writeBE32(1)
	writeBE32(8)
	for _, f := range []float32{10, 11, 12} {
		writeBE32(math.Float32bits(f))
	}
	return buf.Bytes()
}
