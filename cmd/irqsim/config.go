package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/clktmr/asyncirq/sim"
)

type config struct {
	Ticks     uint64
	TickRate  uint32
	LogLevel  string
	LogFormat string
	Script    string
}

func defaultConfig() config {
	return config{
		Ticks:     10_000,
		TickRate:  sim.DefaultTickRate,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// loadConfig returns the defaults overridden by the environment.  The
// environment is extended by files, or .env if none is given; missing files
// are ignored.
func loadConfig(files ...string) (config, error) {
	cfg := defaultConfig()
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if s, ok := os.LookupEnv("IRQSIM_TICKS"); ok {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("IRQSIM_TICKS: %w", err)
		}
		cfg.Ticks = n
	}
	if s, ok := os.LookupEnv("IRQSIM_TICK_RATE"); ok {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("IRQSIM_TICK_RATE: %w", err)
		}
		cfg.TickRate = uint32(n)
	}
	if s, ok := os.LookupEnv("IRQSIM_LOG_LEVEL"); ok {
		cfg.LogLevel = s
	}
	if s, ok := os.LookupEnv("IRQSIM_LOG_FORMAT"); ok {
		cfg.LogFormat = s
	}
	if s, ok := os.LookupEnv("IRQSIM_SCRIPT"); ok {
		cfg.Script = s
	}
	return cfg, nil
}
