// Package sh provides the ishell backed interactive shell of drivectl.
package sh

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/abiosoft/ishell"

	fx "github.com/robokits/drivelink.go/pkg/framework"
	"github.com/robokits/drivelink.go/pkg/link"
	"github.com/robokits/drivelink.go/pkg/transport"
)

// Shell provides an ishell backed interactive shell around a
// Transmitter and a lazily opened transport.
type Shell struct {
	Interactive bool

	Shell       *ishell.Shell
	Config      *transport.Config
	Transmitter *link.Transmitter

	port io.ReadWriteCloser
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&SetCmd,
		&HexCmd,
		&SendCmd,
		&LoopCmd,
		&WatchCmd,
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *transport.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
		Transmitter: &link.Transmitter{},
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("drivelink > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Port returns the open transport, opening it on first use.
func (s *Shell) Port() (io.ReadWriteCloser, error) {
	if s.port == nil {
		port, err := s.Config.Open()
		if err != nil {
			return nil, err
		}
		s.port = port
	}
	return s.port, nil
}

// ClosePort closes the transport if open.
func (s *Shell) ClosePort() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// RunUntilInterrupt runs fn until it returns or Ctrl-C is pressed.
// The transport is closed on interrupt to unblock pending reads and
// reopened on next use.
func (s *Shell) RunUntilInterrupt(fn func(context.Context) error) error {
	port := s.port
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()
	var err error
	if port != nil {
		s.port = nil
		err = fx.RunWithContextCloser(ctx, port, func() error {
			return fn(ctx)
		})
	} else {
		err = fn(ctx)
	}
	if err == context.Canceled {
		return nil
	}
	return err
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.ClosePort()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(transport.NewConfig()).Run(flag.Args()...)
}

// MustHaveArgs wraps a command func requiring at least n args.
func MustHaveArgs(n int, usage string, fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) < n {
			c.Err(fmt.Errorf("usage: %s", usage))
			return
		}
		fn(c)
	}
}
