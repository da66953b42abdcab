package link

import (
	"context"
	"io"
	"os"
)

// DefaultChunkSize is the default per-read buffer size of a Receiver.
const DefaultChunkSize = 64

// ResultHandler is called for each outcome produced by a Receiver.
type ResultHandler interface {
	HandleResult(context.Context, Result)
}

// HandleResultFunc is func type of ResultHandler.
type HandleResultFunc func(context.Context, Result)

// HandleResult implements ResultHandler.
func (f HandleResultFunc) HandleResult(ctx context.Context, res Result) {
	f(ctx, res)
}

// Receiver pulls decode outcomes from a byte stream.
//
// Outcomes are produced strictly in the order their bytes were consumed.
// A read timeout from the underlying Reader means "no bytes yet" and is
// retried, never surfaced. Any other read error ends the stream: pending
// end-of-stream diagnostics are drained first, then the error itself.
type Receiver struct {
	Reader io.Reader
	// Handler receives outcomes when driven via Run.
	Handler ResultHandler
	// ChunkSize is the per-read buffer size, DefaultChunkSize if zero.
	ChunkSize int

	scanner Scanner
	chunk   []byte
	pending []Result
	err     error
}

// NewReceiver creates a Receiver over a byte stream.
func NewReceiver(r io.Reader) *Receiver {
	return &Receiver{Reader: r}
}

// Next returns the next outcome, blocking on the underlying Reader
// until enough bytes arrive. After the stream ends it keeps returning
// the reader's error (io.EOF on a clean close).
func (r *Receiver) Next() (Result, error) {
	for {
		if len(r.pending) > 0 {
			res := r.pending[0]
			r.pending = r.pending[1:]
			return res, nil
		}
		if r.err != nil {
			return Result{}, r.err
		}
		if r.chunk == nil {
			size := r.ChunkSize
			if size <= 0 {
				size = DefaultChunkSize
			}
			r.chunk = make([]byte, size)
		}
		n, err := r.Reader.Read(r.chunk)
		if n > 0 {
			r.pending = r.scanner.Feed(r.chunk[:n])
		}
		if err != nil {
			if os.IsTimeout(err) {
				continue
			}
			r.pending = append(r.pending, r.scanner.Flush()...)
			r.err = err
		}
	}
}

// Run implements Runnable. It pulls outcomes and hands them to Handler
// until the stream ends or the context is canceled. A clean io.EOF is
// not reported as an error. Cancellation does not unblock a pending
// Read; close the underlying stream for that (see framework.
// RunWithContextCloser).
func (r *Receiver) Run(ctx context.Context) error {
	for {
		res, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if h := r.Handler; h != nil {
			h.HandleResult(ctx, res)
		}
	}
}
