package wire

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkRecorder captures each Write as a separate chunk so tests can see
// the fragmentation pattern, not just the reassembled bytes.
type chunkRecorder struct {
	chunks [][]byte
}

func (r *chunkRecorder) Write(p []byte) (int, error) {
	r.chunks = append(r.chunks, append([]byte(nil), p...))
	return len(p), nil
}

type failingWriter struct {
	allowed int
	err     error
	writes  int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.allowed {
		return 0, w.err
	}
	return len(p), nil
}

func TestTransmitReassemblesToWholeCopies(t *testing.T) {
	frame := Encode([]byte("sample-record"))

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		j := NewJitter(rng, WithoutDelays())

		rec := &chunkRecorder{}
		require.NoError(t, j.Transmit(rec, frame))

		var total []byte
		for _, c := range rec.chunks {
			total = append(total, c...)
		}

		// The stream must be 1-5 whole copies of the frame, nothing
		// reordered, nothing lost.
		require.NotEmpty(t, total, "seed %d", seed)
		require.Zero(t, len(total)%len(frame), "seed %d: partial frame on the wire", seed)
		copies := len(total) / len(frame)
		assert.GreaterOrEqual(t, copies, 1, "seed %d", seed)
		assert.LessOrEqual(t, copies, 5, "seed %d", seed)
		for i := 0; i < copies; i++ {
			assert.Equal(t, frame, total[i*len(frame):(i+1)*len(frame)], "seed %d copy %d", seed, i)
		}
	}
}

func TestTransmitDeterministicForSeed(t *testing.T) {
	frame := Encode(bytes.Repeat([]byte{0x5A}, 64))

	run := func() [][]byte {
		j := NewJitter(rand.New(rand.NewSource(1234)), WithoutDelays())
		rec := &chunkRecorder{}
		require.NoError(t, j.Transmit(rec, frame))
		return rec.chunks
	}

	assert.Equal(t, run(), run(), "same seed must produce identical fragmentation")
}

func TestTransmitSingleCopy(t *testing.T) {
	frame := Encode([]byte("one"))
	j := NewJitter(rand.New(rand.NewSource(7)), WithoutDelays(), WithCopies(1, 1))

	rec := &chunkRecorder{}
	require.NoError(t, j.Transmit(rec, frame))

	var total []byte
	for _, c := range rec.chunks {
		total = append(total, c...)
	}
	assert.Equal(t, frame, total)
}

func TestTransmitAbortsOnWriteError(t *testing.T) {
	werr := errors.New("broken pipe")
	w := &failingWriter{allowed: 0, err: werr}

	j := NewJitter(rand.New(rand.NewSource(99)), WithoutDelays())
	// Large frame so there is effectively always more than one chunk.
	err := j.Transmit(w, Encode(bytes.Repeat([]byte{1}, 4096)))

	require.Error(t, err)
	assert.ErrorIs(t, err, werr)
}

func TestTransmitPacing(t *testing.T) {
	var slept time.Duration
	j := NewJitter(rand.New(rand.NewSource(3)),
		WithChunkDelay(time.Millisecond),
		WithSamplePeriod(10*time.Millisecond))
	j.sleep = func(d time.Duration) { slept += d }

	require.NoError(t, j.Transmit(io.Discard, Encode([]byte("pace"))))

	// Per-chunk delays plus the remainder must add up to at least the
	// sample period; the budget only stretches, never shrinks.
	assert.GreaterOrEqual(t, slept, 10*time.Millisecond)
}
