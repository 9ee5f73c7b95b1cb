package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of the length prefix in bytes.
const HeaderSize = 4

// MaxFrameSize is the sanity ceiling applied to inbound frame lengths.
// A peer declaring more than this is treated as malformed.
const MaxFrameSize = 65535

// Framing errors returned by ReadFrame.
var (
	// ErrEmptyFrame is returned when a header declares a zero-length body.
	ErrEmptyFrame = errors.New("frame length is zero")

	// ErrFrameTooLarge is returned when a header declares a body larger
	// than MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame length exceeds maximum")
)

// Encode returns body as a length-prefixed frame. No maximum is enforced
// on encode; the reader side owns validation.
func Encode(body []byte) []byte {
	frame := make([]byte, HeaderSize+len(body))
	binary.BigEndian.PutUint32(frame[:HeaderSize], uint32(len(body)))
	copy(frame[HeaderSize:], body)
	return frame
}

// WriteFrame encodes body and writes the complete frame to w.
func WriteFrame(w io.Writer, body []byte) error {
	if _, err := w.Write(Encode(body)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r and returns its body.
//
// A clean EOF before any header byte returns io.EOF; a connection that
// closes mid-header or mid-body returns io.ErrUnexpectedEOF so callers
// can tell a finished peer from a truncated stream. Declared lengths of
// zero or above MaxFrameSize return ErrEmptyFrame or ErrFrameTooLarge
// without consuming any body bytes.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 {
		return nil, ErrEmptyFrame
	}
	if length > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return body, nil
}
