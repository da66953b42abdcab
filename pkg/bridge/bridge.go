// Package bridge connects the link protocol to MQTT: control updates
// arrive as JSON on <id>/set, decoded frames from the return channel
// are published as JSON on <id>/state.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/robokits/drivelink.go/pkg/framework"
	"github.com/robokits/drivelink.go/pkg/link"
)

// StateMsg is the JSON document published on <id>/state per decoded
// frame of the return channel.
type StateMsg struct {
	Motor1PWM uint16 `json:"motor1_pwm"`
	Motor2PWM uint16 `json:"motor2_pwm"`
	Servo1PWM uint16 `json:"servo1_pwm"`
	Servo2PWM uint16 `json:"servo2_pwm"`
	Motor1Fwd bool   `json:"motor1_fwd"`
	Motor2Fwd bool   `json:"motor2_fwd"`
	Raw       string `json:"raw"`
}

// StateMsgFrom builds a StateMsg from a decoded frame.
func StateMsgFrom(f link.Frame) StateMsg {
	return StateMsg{
		Motor1PWM: f.Motor1PWM,
		Motor2PWM: f.Motor2PWM,
		Servo1PWM: f.Servo1PWM,
		Servo2PWM: f.Servo2PWM,
		Motor1Fwd: f.Motor1Fwd,
		Motor2Fwd: f.Motor2Fwd,
		Raw:       f.Hex(),
	}
}

// Bridge forwards control updates from MQTT onto the link transport
// and link frames from the transport back to MQTT.
type Bridge struct {
	Queue       *Queue
	Port        io.ReadWriteCloser
	Transmitter *link.Transmitter
	ID          string
	// SendInterval is the fixed interval of the frame send loop.
	SendInterval time.Duration
}

// NewBridge creates a Bridge from config over an open transport.
func (c *Config) NewBridge(port io.ReadWriteCloser) (*Bridge, error) {
	q, err := NewQueueFromURL(c.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("create MQTT queue: %v", err)
	}
	return &Bridge{
		Queue:        q,
		Port:         port,
		Transmitter:  &link.Transmitter{},
		ID:           c.ID,
		SendInterval: c.SendInterval,
	}, nil
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect MQTT: %v", err)
	}
	defer b.Queue.Close()
	b.Queue.Sub(b.ID+"/set", b.handleSet)

	recv := link.NewReceiver(b.Port)
	recv.Handler = link.HandleResultFunc(b.handleResult)

	runner := fx.NewRunnerWith(ctx)
	runner.Go(
		fx.NamedRun("recv", fx.RunFunc(func(ctx context.Context) error {
			return fx.RunWithContextCloser(ctx, b.Port, func() error {
				return recv.Run(ctx)
			})
		})),
		fx.NamedRun("send", fx.RunFunc(func(ctx context.Context) error {
			return b.Transmitter.SendLoop(ctx, b.Port, b.SendInterval)
		})),
	)
	return runner.Wait()
}

func (b *Bridge) handleSet(topic string, payload []byte) {
	var u link.Update
	if err := json.Unmarshal(payload, &u); err != nil {
		glog.Warningf("bad set message: %v", err)
		return
	}
	b.Transmitter.Apply(u)
	glog.V(1).Infof("state -> %s", b.Transmitter.SnapshotHex())
}

func (b *Bridge) handleResult(ctx context.Context, res link.Result) {
	if res.Err != nil {
		glog.V(1).Infof("link: %v", res.Err)
		return
	}
	out, err := json.Marshal(StateMsgFrom(*res.Frame))
	if err != nil {
		glog.Errorf("marshal state: %v", err)
		return
	}
	b.Queue.Pub(b.ID+"/state", out)
}
