package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robokits/drivelink.go/pkg/link"
)

func TestParsePWM(t *testing.T) {
	testCases := []struct {
		in     string
		expect uint16
		fails  bool
	}{
		{in: "0", expect: 0},
		{in: "1000", expect: 1000},
		{in: "65535", expect: 65535},
		{in: "0x3e8", expect: 1000},
		// beyond 16 bits wraps, the wire field is uint16
		{in: "65536", expect: 0},
		{in: "70000", expect: 4464},
		{in: "", fails: true},
		{in: "-1", fails: true},
		{in: "full", fails: true},
	}
	for _, tc := range testCases {
		v, err := parsePWM(tc.in)
		if tc.fails {
			require.Errorf(t, err, "parsePWM(%q)", tc.in)
			continue
		}
		require.NoErrorf(t, err, "parsePWM(%q)", tc.in)
		require.Equalf(t, tc.expect, v, "parsePWM(%q)", tc.in)
	}
}

func TestParseDir(t *testing.T) {
	for _, s := range []string{"1", "fwd"} {
		fwd, err := parseDir(s)
		require.NoError(t, err)
		require.True(t, fwd)
	}
	for _, s := range []string{"0", "rev"} {
		fwd, err := parseDir(s)
		require.NoError(t, err)
		require.False(t, fwd)
	}
	_, err := parseDir("left")
	require.Error(t, err)
}

func TestParseUpdate(t *testing.T) {
	u, err := parseUpdate([]string{"m1", "1000", "m2", "1500", "s1", "2000", "s2", "2500", "d1", "0", "d2", "1"})
	require.NoError(t, err)
	tx := &link.Transmitter{}
	tx.Apply(u)
	require.Equal(t,
		link.Frame{Motor1PWM: 1000, Motor2PWM: 1500, Servo1PWM: 2000, Servo2PWM: 2500, Motor2Fwd: true},
		tx.Snapshot())

	// partial update
	u, err = parseUpdate([]string{"m2", "50000"})
	require.NoError(t, err)
	require.Nil(t, u.Motor1PWM)
	require.NotNil(t, u.Motor2PWM)
	require.Equal(t, uint16(50000), *u.Motor2PWM)

	_, err = parseUpdate([]string{"m1"})
	require.Error(t, err)
	_, err = parseUpdate([]string{"m3", "1"})
	require.Error(t, err)
	_, err = parseUpdate([]string{"d1", "up"})
	require.Error(t, err)
}
