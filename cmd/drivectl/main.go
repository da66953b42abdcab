package main

//go-build: CGO_ENABLED=0

import (
	"github.com/robokits/drivelink.go/pkg/cli/sh"
	"github.com/robokits/drivelink.go/pkg/transport"
)

func init() {
	transport.SetupFlags()
}

func main() {
	sh.Main()
}
