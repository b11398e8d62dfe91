package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clktmr/asyncirq/internal/demo"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/task"
)

func newRootCmd(cfg *config) *cobra.Command {
	root := &cobra.Command{
		Use:   "irqsim",
		Short: "Run interrupt driven demo tasks on a simulated microcontroller.",
		Long: `irqsim simulates a blue pill like board: an LED, a button on PA7, TIM2 and ` +
			`USART3 served by DMA. The demos wait for the board's interrupts instead of ` +
			`polling it. Simulated time advances one tick whenever no task is runnable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, cfg)
		},
	}

	f := root.PersistentFlags()
	f.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "number of ticks to simulate")
	f.Uint32Var(&cfg.TickRate, "tick-rate", cfg.TickRate, "ticks per simulated second")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	f.StringVar(&cfg.Script, "script", cfg.Script,
		`events to inject, e.g. "at 10 send 'hello world'; at 20 edge PA7"`)

	root.AddCommand(
		newHeartbeatCmd(cfg),
		newEchoCmd(cfg),
		newToggleCmd(cfg),
		newHelloCmd(cfg),
	)
	return root
}

func setupLogging(cmd *cobra.Command, cfg *config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	format, err := log.ParseFormat(cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}
	log.SetOutput(cmd.ErrOrStderr(), format)
	log.SetLevel(level)
	return nil
}

// simulate runs the tasks spawned on e on b for the configured number of ticks
// and prints a summary.
func simulate(cmd *cobra.Command, cfg *config, b *demo.Board, e *task.Executor) error {
	evs, err := parseScript(cfg.Script)
	if err != nil {
		return err
	}
	if err := schedule(b, evs); err != nil {
		return err
	}
	logFrames(b.Serial)

	log.Info(log.ComponentCLI, "start", "command", cmd.Name(), "ticks", cfg.Ticks, "tick_rate", cfg.TickRate)
	b.Run(e, cfg.Ticks)

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "tick %d: %d tasks running, led toggled %d times, %d bytes sent\n",
		b.MCU.Clock.Now(), e.Pending(), b.LED.Toggles(), len(b.Serial.Sent()))
	return err
}
