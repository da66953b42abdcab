package link

import "bytes"

// Result is one outcome produced by the Scanner: a decoded frame,
// or a diagnostic (*SkippedError, *TruncatedError).
type Result struct {
	Frame *Frame
	Err   error
}

// Scanner recovers frame boundaries from an unaligned byte stream.
//
// It holds a small rolling buffer and alternates between seeking the
// header sentinel and validating a candidate frame. On a footer mismatch
// only the false header byte is discarded, so a genuine frame following
// a coincidental 0x0d in payload data is recovered within at most
// FrameSize-1 byte shifts.
//
// Between Feed calls the buffer is either empty or holds a partial frame
// starting with a header byte, so it never exceeds FrameSize-1 bytes plus
// the size of the incoming chunk during a scan.
type Scanner struct {
	buf     []byte
	skipped int
}

// Feed appends a chunk of received bytes and returns all outcomes that
// become complete, in stream order. An empty chunk is a no-op.
func (s *Scanner) Feed(chunk []byte) []Result {
	s.buf = append(s.buf, chunk...)
	var out []Result
	for {
		idx := bytes.IndexByte(s.buf, Header)
		if idx < 0 {
			// No header: everything buffered is noise. The skip count
			// carries over so one diagnostic covers the whole gap.
			s.skipped += len(s.buf)
			s.buf = s.buf[:0]
			return out
		}
		s.skipped += idx
		s.buf = s.buf[idx:]
		if s.skipped > 0 {
			out = append(out, Result{Err: &SkippedError{Count: s.skipped}})
			s.skipped = 0
		}
		if len(s.buf) < FrameSize {
			// Wait for the rest of the candidate frame.
			return out
		}
		f, err := Decode(s.buf[:FrameSize])
		if err != nil {
			// False header: discard one byte, not the whole candidate,
			// and rescan. The discarded byte counts as noise.
			s.buf = s.buf[1:]
			s.skipped++
			continue
		}
		out = append(out, Result{Frame: &f})
		s.buf = s.buf[FrameSize:]
	}
}

// Buffered returns the number of bytes currently buffered.
func (s *Scanner) Buffered() int {
	return len(s.buf)
}

// Flush reports outcomes pending at end of stream: a SkippedError for
// trailing noise and a TruncatedError if the stream ended mid-frame.
// The scanner is reset afterwards.
func (s *Scanner) Flush() []Result {
	var out []Result
	if s.skipped > 0 {
		out = append(out, Result{Err: &SkippedError{Count: s.skipped}})
		s.skipped = 0
	}
	if len(s.buf) > 0 {
		out = append(out, Result{Err: &TruncatedError{Buffered: len(s.buf)}})
		s.buf = s.buf[:0]
	}
	return out
}
