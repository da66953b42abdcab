package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robokits/drivelink.go/pkg/bridge"
	fx "github.com/robokits/drivelink.go/pkg/framework"
	"github.com/robokits/drivelink.go/pkg/transport"
)

func init() {
	transport.SetupFlags()
	bridge.SetupFlags()
}

func main() {
	flag.Parse()

	port, err := transport.Default().Open()
	if err != nil {
		log.Fatalln(err)
	}

	b, err := bridge.NewConfig().NewBridge(port)
	if err != nil {
		log.Fatalln(err)
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("bridge", b))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
