package link

import (
	"context"
	"io"
	"sync"
	"time"
)

// Update carries a partial change to the transmitter state. Nil fields
// leave the current value unchanged.
type Update struct {
	Motor1PWM *uint16 `json:"motor1_pwm,omitempty"`
	Motor2PWM *uint16 `json:"motor2_pwm,omitempty"`
	Servo1PWM *uint16 `json:"servo1_pwm,omitempty"`
	Servo2PWM *uint16 `json:"servo2_pwm,omitempty"`
	Motor1Fwd *bool   `json:"motor1_fwd,omitempty"`
	Motor2Fwd *bool   `json:"motor2_fwd,omitempty"`
}

// PWM wraps a duty cycle value for use in an Update.
func PWM(v uint16) *uint16 { return &v }

// Dir wraps a direction flag for use in an Update.
func Dir(forward bool) *bool { return &forward }

// Transmitter holds the current control values and serializes them to
// frames on demand. The zero value is ready to use with all values zero
// and both directions backward.
type Transmitter struct {
	frame Frame
	lock  sync.RWMutex
}

// NewTransmitter creates a Transmitter with an initial state.
func NewTransmitter(initial Frame) *Transmitter {
	return &Transmitter{frame: initial}
}

// Apply mutates the state with the non-nil fields of the update.
func (t *Transmitter) Apply(u Update) {
	t.lock.Lock()
	defer t.lock.Unlock()
	if u.Motor1PWM != nil {
		t.frame.Motor1PWM = *u.Motor1PWM
	}
	if u.Motor2PWM != nil {
		t.frame.Motor2PWM = *u.Motor2PWM
	}
	if u.Servo1PWM != nil {
		t.frame.Servo1PWM = *u.Servo1PWM
	}
	if u.Servo2PWM != nil {
		t.frame.Servo2PWM = *u.Servo2PWM
	}
	if u.Motor1Fwd != nil {
		t.frame.Motor1Fwd = *u.Motor1Fwd
	}
	if u.Motor2Fwd != nil {
		t.frame.Motor2Fwd = *u.Motor2Fwd
	}
}

// Snapshot returns a copy of the current state.
func (t *Transmitter) Snapshot() Frame {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.frame
}

// SnapshotHex returns the encoded current state as a hex string
// without sending anything.
func (t *Transmitter) SnapshotHex() string {
	return t.Snapshot().Hex()
}

// SendOnce encodes the current state and writes one frame. The whole
// frame is handed to a single Write call. Transport errors are returned
// as-is, without retry.
func (t *Transmitter) SendOnce(w io.Writer) (int, error) {
	return t.Snapshot().WriteTo(w)
}

// SendLoop sends a frame immediately and then on every interval tick
// until the context is canceled. Cancellation happens only between
// sends, never mid-frame. The first transport error stops the loop.
func (t *Transmitter) SendLoop(ctx context.Context, w io.Writer, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := t.SendOnce(w); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
