package link

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testFrameA = Frame{Motor1PWM: 1000, Motor2PWM: 1500, Servo1PWM: 2000, Servo2PWM: 2500, Motor2Fwd: true}
	testFrameB = Frame{Motor1PWM: 10000, Motor2PWM: 20000, Servo1PWM: 1000, Servo2PWM: 1400, Motor1Fwd: true, Motor2Fwd: true}
	// Servo2PWM 0x0d20 puts a coincidental header byte in the payload.
	testFrameC = Frame{Motor1PWM: 3, Servo2PWM: 0x0d20, Motor1Fwd: true}
)

func frameOf(f Frame) Result { return Result{Frame: &f} }
func skipped(n int) Result   { return Result{Err: &SkippedError{Count: n}} }
func truncated(n int) Result { return Result{Err: &TruncatedError{Buffered: n}} }
func noise(n int) []byte     { return make([]byte, n) }

type scanStep struct {
	feed   []byte
	expect []Result
}

func TestScanner(t *testing.T) {
	testCases := []struct {
		name  string
		steps []scanStep
	}{
		{
			name: "aligned single frame",
			steps: []scanStep{
				{testFrameA.Bytes(), []Result{frameOf(testFrameA)}},
			},
		},
		{
			name: "back to back frames in one chunk",
			steps: []scanStep{
				{
					append(testFrameA.Bytes(), testFrameB.Bytes()...),
					[]Result{frameOf(testFrameA), frameOf(testFrameB)},
				},
			},
		},
		{
			name: "leading noise then frame",
			steps: []scanStep{
				{
					append(noise(20), testFrameA.Bytes()...),
					[]Result{skipped(20), frameOf(testFrameA)},
				},
			},
		},
		{
			name: "noise and frame in separate chunks",
			steps: []scanStep{
				{noise(12), nil},
				{noise(8), nil},
				{testFrameA.Bytes(), []Result{skipped(20), frameOf(testFrameA)}},
			},
		},
		{
			name: "false header recovers following frame",
			steps: []scanStep{
				{
					append([]byte{Header, 0x01, 0x02}, testFrameB.Bytes()...),
					[]Result{skipped(3), frameOf(testFrameB)},
				},
			},
		},
		{
			name: "header byte inside payload stays in frame",
			steps: []scanStep{
				{
					append(testFrameC.Bytes(), testFrameA.Bytes()...),
					[]Result{frameOf(testFrameC), frameOf(testFrameA)},
				},
			},
		},
		{
			name: "frame split mid header candidate",
			steps: []scanStep{
				{testFrameA.Bytes()[:5], nil},
				{testFrameA.Bytes()[5:], []Result{frameOf(testFrameA)}},
			},
		},
		{
			name: "attach mid frame",
			steps: []scanStep{
				{
					append(testFrameA.Bytes()[4:], testFrameB.Bytes()...),
					[]Result{skipped(7), frameOf(testFrameB)},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var scanner Scanner
			for n, step := range tc.steps {
				require.Equalf(t, step.expect, scanner.Feed(step.feed), "step[%d]", n)
			}
		})
	}
}

func TestScannerByteAtATime(t *testing.T) {
	var scanner Scanner
	raw := testFrameA.Bytes()
	for i := 0; i+1 < len(raw); i++ {
		require.Nil(t, scanner.Feed(raw[i:i+1]))
	}
	require.Equal(t, []Result{frameOf(testFrameA)}, scanner.Feed(raw[len(raw)-1:]))
}

func TestScannerBoundedBuffer(t *testing.T) {
	var scanner Scanner
	total := 0
	for i := 0; i < 64; i++ {
		require.Nil(t, scanner.Feed(noise(1024)))
		require.Equal(t, 0, scanner.Buffered())
		total += 1024
	}
	require.Equal(t,
		[]Result{skipped(total), frameOf(testFrameA)},
		scanner.Feed(testFrameA.Bytes()))
	require.Equal(t, 0, scanner.Buffered())
}

func TestScannerFlush(t *testing.T) {
	t.Run("mid frame", func(t *testing.T) {
		var scanner Scanner
		require.Nil(t, scanner.Feed(testFrameA.Bytes()[:6]))
		require.Equal(t, []Result{truncated(6)}, scanner.Flush())
		require.Equal(t, 0, scanner.Buffered())
	})
	t.Run("trailing noise", func(t *testing.T) {
		var scanner Scanner
		require.Nil(t, scanner.Feed(noise(5)))
		require.Equal(t, []Result{skipped(5)}, scanner.Flush())
	})
	t.Run("noise then mid frame", func(t *testing.T) {
		var scanner Scanner
		require.Equal(t,
			[]Result{skipped(3)},
			scanner.Feed(append(noise(3), testFrameA.Bytes()[:2]...)))
		require.Equal(t, []Result{truncated(2)}, scanner.Flush())
	})
	t.Run("empty", func(t *testing.T) {
		var scanner Scanner
		require.Nil(t, scanner.Flush())
	})
}
