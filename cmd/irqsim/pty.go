package main

import (
	"fmt"
	"time"

	"github.com/aymanbagabas/go-pty"

	"github.com/clktmr/asyncirq/internal/demo"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/sim"
)

// bridge connects the board's USART to a pseudo-terminal.  Input is read on
// its own goroutine and fed to the USART from the clock.
type bridge struct {
	p  pty.Pty
	in chan []byte
}

// openBridge attaches b.Serial to a new pseudo-terminal and slows the clock
// down to real time, so the terminal can keep up.
func openBridge(b *demo.Board) (*bridge, error) {
	p, err := pty.New()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	br := &bridge{p: p, in: make(chan []byte, 16)}
	go br.read()

	b.Serial.SetOutput(p)
	b.MCU.Clock.Add(sim.TickerFunc(br.feed(b.Serial)))
	b.MCU.Clock.Add(sim.TickerFunc(pace(b.MCU.TickRate)))
	log.Info(log.ComponentCLI, "usart attached", "pty", p.Name())
	return br, nil
}

func (br *bridge) read() {
	defer close(br.in)
	for {
		buf := make([]byte, 64)
		n, err := br.p.Read(buf)
		if n > 0 {
			br.in <- buf[:n]
		}
		if err != nil {
			log.Debug(log.ComponentCLI, "pty read", "err", err)
			return
		}
	}
}

func (br *bridge) feed(u *sim.USART) func(uint64) {
	return func(uint64) {
		for {
			select {
			case p, ok := <-br.in:
				if !ok {
					return
				}
				u.Feed(p)
			default:
				return
			}
		}
	}
}

func (br *bridge) Close() error {
	return br.p.Close()
}

// pace returns a ticker that sleeps until wall clock time caught up with the
// simulated time.
func pace(rate uint32) func(uint64) {
	start := time.Now()
	return func(now uint64) {
		due := start.Add(time.Duration(now) * time.Second / time.Duration(rate))
		if d := time.Until(due); d > 0 {
			time.Sleep(d)
		}
	}
}
