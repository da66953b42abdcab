package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/golang/glog"

	fx "github.com/robokits/drivelink.go/pkg/framework"
	"github.com/robokits/drivelink.go/pkg/link"
	"github.com/robokits/drivelink.go/pkg/transport"
)

func init() {
	transport.SetupFlags()
}

func main() {
	flag.Parse()

	conf := transport.Default()
	if conf.Device == "" {
		device, err := transport.DetectDevice()
		if err != nil {
			log.Fatalln(err)
		}
		conf.Device = device
	}
	port, err := conf.Open()
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Printf("listening on %s @ %d, expecting %d byte frames\n",
		conf.Device, conf.BaudRate, link.FrameSize)

	recv := link.NewReceiver(port)
	recv.Handler = link.HandleResultFunc(func(_ context.Context, res link.Result) {
		if res.Err != nil {
			glog.Warningf("link: %v", res.Err)
			return
		}
		f := res.Frame
		fmt.Printf("%s m1=%d m2=%d s1=%d s2=%d d1=%v d2=%v\n",
			f.Hex(), f.Motor1PWM, f.Motor2PWM, f.Servo1PWM, f.Servo2PWM,
			f.Motor1Fwd, f.Motor2Fwd)
	})

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("linkspy", fx.RunFunc(func(ctx context.Context) error {
		return fx.RunWithContextCloser(ctx, port, func() error {
			return recv.Run(ctx)
		})
	})))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
