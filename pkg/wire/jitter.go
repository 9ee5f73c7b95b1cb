package wire

import (
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Jitter transmits encoded frames in randomly sized, randomly paced
// chunks, optionally duplicating each frame, so a client under test must
// reassemble messages from an arbitrarily fragmented byte stream. Each
// Jitter owns its own rand.Rand instance; callers that need reproducible
// fragmentation seed it explicitly.
//
// Jitter is not safe for concurrent use. Each session gets its own.
type Jitter struct {
	rng *rand.Rand

	copyMin      int
	copyMax      int
	chunkDelay   time.Duration
	samplePeriod time.Duration

	// sleep is swapped out in tests to avoid real delays.
	sleep func(time.Duration)
}

// JitterOption configures a Jitter.
type JitterOption func(*Jitter)

// WithCopies sets the inclusive range of frame duplication counts.
func WithCopies(min, max int) JitterOption {
	return func(j *Jitter) {
		j.copyMin = min
		j.copyMax = max
	}
}

// WithChunkDelay sets the pause after each chunk write.
func WithChunkDelay(d time.Duration) JitterOption {
	return func(j *Jitter) { j.chunkDelay = d }
}

// WithSamplePeriod sets the approximate per-frame pacing budget.
func WithSamplePeriod(d time.Duration) JitterOption {
	return func(j *Jitter) { j.samplePeriod = d }
}

// WithoutDelays disables all sleeping. Test use only; the pacing budget
// still computes but never blocks.
func WithoutDelays() JitterOption {
	return func(j *Jitter) { j.sleep = func(time.Duration) {} }
}

// NewJitter creates a transmitter driven by rng. A nil rng gets a
// time-seeded source.
func NewJitter(rng *rand.Rand, opts ...JitterOption) *Jitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	j := &Jitter{
		rng:          rng,
		copyMin:      1,
		copyMax:      5,
		chunkDelay:   time.Millisecond,
		samplePeriod: 10 * time.Millisecond,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Transmit writes frame to w as 1-5 back-to-back copies, sliced at random
// offsets with a short pause between slices. After the last slice it
// sleeps whatever remains of the sample period, giving an approximate
// rather than exact output rate. A write error aborts immediately and is
// returned to the caller; the session layer treats it as the peer going
// away, not as a fault.
func (j *Jitter) Transmit(w io.Writer, frame []byte) error {
	copies := j.copyMin
	if j.copyMax > j.copyMin {
		copies += j.rng.Intn(j.copyMax - j.copyMin + 1)
	}

	buf := make([]byte, 0, len(frame)*copies)
	for i := 0; i < copies; i++ {
		buf = append(buf, frame...)
	}

	var slept time.Duration
	for offset := 0; offset < len(buf); {
		// Cut point anywhere between the current offset and the end,
		// inclusive, so zero-length writes (pure delay ticks) happen too.
		cut := offset + j.rng.Intn(len(buf)-offset+1)
		if cut > offset {
			if _, err := w.Write(buf[offset:cut]); err != nil {
				return fmt.Errorf("write chunk: %w", err)
			}
		}
		offset = cut

		j.sleep(j.chunkDelay)
		slept += j.chunkDelay
	}

	if rest := j.samplePeriod - slept; rest > 0 {
		j.sleep(rest)
	}
	return nil
}
