package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clktmr/asyncirq/internal/demo"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/task"
)

func newHeartbeatCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Blink the LED in a heartbeat rhythm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := demo.NewBoard(cfg.TickRate)
			e := task.NewExecutor(1)
			e.Spawn(demo.NewHeartbeat(b.LED, b.Timer()))
			return simulate(cmd, cfg, b, e)
		},
	}
}

func newEchoCmd(cfg *config) *cobra.Command {
	var attach bool
	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Send every received frame back, next to the heartbeat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := demo.NewBoard(cfg.TickRate)
			if attach {
				br, err := openBridge(b)
				if err != nil {
					return err
				}
				defer func() {
					if err := br.Close(); err != nil {
						log.Warn(log.ComponentCLI, "close pty", "err", err)
					}
				}()
			}

			echo := demo.NewEcho(b.TxSink(), b.RxStream())
			e := task.NewExecutor(2)
			e.Spawn(echo)
			e.Spawn(demo.NewHeartbeat(b.LED, b.Timer()))
			if err := simulate(cmd, cfg, b, e); err != nil {
				return err
			}
			return echo.Err()
		},
	}
	cmd.Flags().BoolVar(&attach, "pty", false, "attach USART3 to a pseudo-terminal and run in real time")
	return cmd
}

func newToggleCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle the LED on every edge of the button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := demo.NewBoard(cfg.TickRate)
			e := task.NewExecutor(1)
			e.Spawn(demo.NewToggle(b.ButtonPin(), b.LED))
			return simulate(cmd, cfg, b, e)
		},
	}
}

var errNoMessage = errors.New("hello: empty message")

func newHelloCmd(cfg *config) *cobra.Command {
	var (
		msg   string
		count int
	)
	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Send a message over and over, next to the heartbeat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if msg == "" {
				return errNoMessage
			}
			if len(msg) > demo.FrameSize {
				return fmt.Errorf("hello: message longer than %d bytes", demo.FrameSize)
			}
			b := demo.NewBoard(cfg.TickRate)
			e := task.NewExecutor(2)
			e.Spawn(demo.NewHello(b.TxSink(), []byte(msg), count))
			e.Spawn(demo.NewHeartbeat(b.LED, b.Timer()))
			return simulate(cmd, cfg, b, e)
		},
	}
	cmd.Flags().StringVar(&msg, "message", "01234567", "message to send, at most 8 bytes")
	cmd.Flags().IntVar(&count, "count", 0, "number of messages, 0 for no limit")
	return cmd
}
