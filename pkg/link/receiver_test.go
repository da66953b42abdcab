package link

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "read timeout" }
func (timeoutError) Timeout() bool { return true }

type readStep struct {
	data []byte
	err  error
}

// scriptReader plays back one read step per Read call and returns
// io.EOF once the script ends.
type scriptReader struct {
	steps []readStep
}

func (r *scriptReader) Read(p []byte) (int, error) {
	if len(r.steps) == 0 {
		return 0, io.EOF
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return copy(p, step.data), step.err
}

func collect(r *Receiver) ([]Result, error) {
	var out []Result
	for {
		res, err := r.Next()
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
}

func TestReceiverNext(t *testing.T) {
	raw := append(testFrameA.Bytes(), testFrameB.Bytes()...)
	rd := &scriptReader{steps: []readStep{
		{raw[:7], nil},
		{nil, timeoutError{}},
		{raw[7:15], nil},
		{raw[15:], nil},
	}}
	out, err := collect(NewReceiver(rd))
	require.Equal(t, io.EOF, err)
	require.Equal(t, []Result{frameOf(testFrameA), frameOf(testFrameB)}, out)

	// the stream stays ended
	_, err = NewReceiver(rd).Next()
	require.Equal(t, io.EOF, err)
}

func TestReceiverNoiseAndTruncation(t *testing.T) {
	rd := &scriptReader{steps: []readStep{
		{noise(20), nil},
		{testFrameA.Bytes(), nil},
		{testFrameB.Bytes()[:4], nil},
	}}
	out, err := collect(NewReceiver(rd))
	require.Equal(t, io.EOF, err)
	require.Equal(t, []Result{skipped(20), frameOf(testFrameA), truncated(4)}, out)
}

func TestReceiverReadError(t *testing.T) {
	brokenPipe := errors.New("device disconnected")
	rd := &scriptReader{steps: []readStep{
		{testFrameA.Bytes(), nil},
		{nil, brokenPipe},
	}}
	recv := NewReceiver(rd)
	res, err := recv.Next()
	require.NoError(t, err)
	require.Equal(t, frameOf(testFrameA), res)
	_, err = recv.Next()
	require.Equal(t, brokenPipe, err)
}

func TestReceiverRun(t *testing.T) {
	rd := &scriptReader{steps: []readStep{
		{noise(3), nil},
		{testFrameA.Bytes(), nil},
	}}
	recv := NewReceiver(rd)
	var out []Result
	recv.Handler = HandleResultFunc(func(_ context.Context, res Result) {
		out = append(out, res)
	})
	require.NoError(t, recv.Run(context.Background()))
	require.Equal(t, []Result{skipped(3), frameOf(testFrameA)}, out)
}

type endlessReader struct{ frame []byte }

func (r *endlessReader) Read(p []byte) (int, error) {
	return copy(p, r.frame), nil
}

func TestReceiverRunCancel(t *testing.T) {
	recv := NewReceiver(&endlessReader{frame: testFrameA.Bytes()})
	recv.ChunkSize = FrameSize
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, recv.Run(ctx))
}
