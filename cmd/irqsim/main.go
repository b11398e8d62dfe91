// Irqsim runs the demo programs on a simulated microcontroller.
//
// Usage:
//
//	irqsim <command> [flags]
//
// The commands are heartbeat, echo, toggle and hello.  Defaults of the global
// flags are read from IRQSIM_* environment variables, which may also be set in
// a .env file in the working directory.
package main

import (
	"fmt"
	"os"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
