package sh

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robokits/drivelink.go/pkg/link"
)

// parsePWM parses a duty cycle value. Values beyond 16 bits wrap to
// the low 16 bits, matching the wire encoding; the protocol defines
// no range checking.
func parsePWM(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid PWM value %q", s)
	}
	return uint16(v), nil
}

// parseDir parses a direction flag: 1/fwd = forward, 0/rev = backward.
func parseDir(s string) (bool, error) {
	switch s {
	case "1", "fwd":
		return true, nil
	case "0", "rev":
		return false, nil
	}
	return false, fmt.Errorf("invalid direction %q (use 0/1/fwd/rev)", s)
}

// parseUpdate parses "FIELD VALUE ..." pairs into a partial update.
func parseUpdate(args []string) (u link.Update, err error) {
	if len(args)%2 != 0 {
		return u, fmt.Errorf("arguments must be FIELD VALUE pairs")
	}
	for i := 0; i < len(args); i += 2 {
		field, val := args[i], args[i+1]
		switch field {
		case "m1", "m2", "s1", "s2":
			var pwm uint16
			if pwm, err = parsePWM(val); err != nil {
				return
			}
			switch field {
			case "m1":
				u.Motor1PWM = &pwm
			case "m2":
				u.Motor2PWM = &pwm
			case "s1":
				u.Servo1PWM = &pwm
			case "s2":
				u.Servo2PWM = &pwm
			}
		case "d1", "d2":
			var fwd bool
			if fwd, err = parseDir(val); err != nil {
				return
			}
			if field == "d1" {
				u.Motor1Fwd = &fwd
			} else {
				u.Motor2Fwd = &fwd
			}
		default:
			return u, fmt.Errorf("unknown field %q (use m1 m2 s1 s2 d1 d2)", field)
		}
	}
	return
}

var (
	// SetCmd updates control values.
	SetCmd = ishell.Cmd{
		Name:    "set",
		Aliases: []string{"s"},
		Help:    "m1|m2|s1|s2|d1|d2 VALUE ...",
		Func: MustHaveArgs(2, "set FIELD VALUE ...", func(c *ishell.Context) {
			s := ShellFrom(c)
			u, err := parseUpdate(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			s.Transmitter.Apply(u)
			c.Println(s.Transmitter.SnapshotHex())
		}),
	}

	// HexCmd prints the current frame without sending.
	HexCmd = ishell.Cmd{
		Name:    "hex",
		Aliases: []string{"x"},
		Help:    "",
		Func: func(c *ishell.Context) {
			c.Println(ShellFrom(c).Transmitter.SnapshotHex())
		},
	}

	// SendCmd sends the current frame once.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			port, err := s.Port()
			if err != nil {
				c.Err(err)
				return
			}
			n, err := s.Transmitter.SendOnce(port)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent %d bytes -> %s\n", n, s.Transmitter.SnapshotHex())
		},
	}

	// LoopCmd sends the current frame repeatedly until Ctrl-C.
	LoopCmd = ishell.Cmd{
		Name: "loop",
		Help: "[INTERVAL, e.g. 500ms, default 1s]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			interval := time.Second
			if len(c.Args) > 0 {
				var err error
				if interval, err = time.ParseDuration(c.Args[0]); err != nil {
					c.Err(fmt.Errorf("invalid INTERVAL: %v", err))
					return
				}
			}
			port, err := s.Port()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("sending %s every %s, Ctrl-C to stop\n", s.Transmitter.SnapshotHex(), interval)
			if err = s.RunUntilInterrupt(func(ctx context.Context) error {
				return s.Transmitter.SendLoop(ctx, port, interval)
			}); err != nil {
				c.Err(err)
			}
		},
	}

	// WatchCmd prints decoded frames from the transport until Ctrl-C.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			port, err := s.Port()
			if err != nil {
				c.Err(err)
				return
			}
			recv := link.NewReceiver(port)
			recv.Handler = link.HandleResultFunc(func(_ context.Context, res link.Result) {
				if res.Err != nil {
					c.Printf("-- %v\n", res.Err)
					return
				}
				f := res.Frame
				c.Printf("%s m1=%d m2=%d s1=%d s2=%d d1=%v d2=%v\n",
					f.Hex(), f.Motor1PWM, f.Motor2PWM, f.Servo1PWM, f.Servo2PWM,
					f.Motor1Fwd, f.Motor2Fwd)
			})
			c.Println("watching, Ctrl-C to stop")
			if err = s.RunUntilInterrupt(recv.Run); err != nil {
				c.Err(err)
			}
		},
	}

	// OpenCmd opens the transport, optionally overriding the device.
	OpenCmd = ishell.Cmd{
		Name: "open",
		Help: "[DEVICE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				if err := s.ClosePort(); err != nil {
					c.Err(err)
					return
				}
				s.Config.Device = c.Args[0]
			}
			if _, err := s.Port(); err != nil {
				c.Err(err)
				return
			}
			c.Printf("open %s @ %d\n", s.Config.Device, s.Config.BaudRate)
		},
	}

	// CloseCmd closes the transport.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).ClosePort(); err != nil {
				c.Err(err)
			}
		},
	}
)
