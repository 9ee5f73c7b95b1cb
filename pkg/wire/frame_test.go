package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	frame := Encode([]byte("abc"))

	require.Len(t, frame, HeaderSize+3)
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(frame[:HeaderSize]))
	assert.Equal(t, []byte("abc"), frame[HeaderSize:])
}

func TestRoundTrip(t *testing.T) {
	bodies := [][]byte{
		{0x00},
		[]byte("x"),
		[]byte(`<?xml version="1.0"?><service name="preview"/>`),
		bytes.Repeat([]byte{0xAB}, 1024),
		bytes.Repeat([]byte{0xCD}, MaxFrameSize),
	}

	for _, body := range bodies {
		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, body))

		got, err := ReadFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	}
}

func TestRoundTripBackToBack(t *testing.T) {
	var buf bytes.Buffer
	frames := [][]byte{[]byte("first"), []byte("second"), []byte("third")}
	for _, f := range frames {
		require.NoError(t, WriteFrame(&buf, f))
	}

	for _, want := range frames {
		got, err := ReadFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ReadFrame(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrameRejectsBadLengths(t *testing.T) {
	tests := []struct {
		name    string
		length  uint32
		wantErr error
	}{
		{"zero length", 0, ErrEmptyFrame},
		{"just over ceiling", MaxFrameSize + 1, ErrFrameTooLarge},
		{"way over ceiling", 1 << 30, ErrFrameTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var header [HeaderSize]byte
			binary.BigEndian.PutUint32(header[:], tt.length)
			buf.Write(header[:])
			// Body content must not matter for rejection.
			buf.WriteString("ignored")

			_, err := ReadFrame(&buf)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadFrameCleanEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrameShortHeader(t *testing.T) {
	// Connection dropped mid-header: not a clean EOF.
	_, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x00}))
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestReadFrameShortBody(t *testing.T) {
	frame := Encode([]byte("full body"))
	truncated := frame[:len(frame)-3]

	_, err := ReadFrame(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
