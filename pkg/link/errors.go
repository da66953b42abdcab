package link

import "fmt"

// Sentinel identifies which sentinel byte a SentinelError refers to.
type Sentinel int

const (
	// SentinelHeader is the frame start sentinel position.
	SentinelHeader Sentinel = iota
	// SentinelFooter is the frame end sentinel position.
	SentinelFooter
)

// String implements fmt.Stringer.
func (s Sentinel) String() string {
	if s == SentinelFooter {
		return "footer"
	}
	return "header"
}

// SentinelError indicates a sentinel byte mismatch during decode.
// It is always recoverable by the Scanner and never fatal.
type SentinelError struct {
	Which Sentinel
	Got   byte
}

// Error implements error.
func (e *SentinelError) Error() string {
	return fmt.Sprintf("bad %s sentinel: %#02x", e.Which, e.Got)
}

// SizeError indicates Decode was given a buffer of the wrong size.
type SizeError struct {
	Size int
}

// Error implements error.
func (e *SizeError) Error() string {
	return fmt.Sprintf("frame must be %d bytes, got %d", FrameSize, e.Size)
}

// SkippedError reports bytes discarded by the Scanner before a frame
// header was found. It is diagnostic only, not a failure.
type SkippedError struct {
	Count int
}

// Error implements error.
func (e *SkippedError) Error() string {
	return fmt.Sprintf("skipped %d bytes before frame header", e.Count)
}

// TruncatedError reports the stream ended in the middle of a frame.
type TruncatedError struct {
	// Buffered is the number of frame bytes received before the end.
	Buffered int
}

// Error implements error.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("stream truncated %d bytes into a frame", e.Buffered)
}
