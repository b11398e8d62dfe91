package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/clktmr/asyncirq/internal/demo"
	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/sim"
)

type action int

const (
	actSend action = iota // queue arg on the receive line
	actEdge               // invert the level of pin arg
)

type event struct {
	tick uint64
	act  action
	arg  string
}

// parseScript parses lines of the form
//
//	at <tick> send <text>
//	at <tick> edge <pin>
//
// separated by newlines or semicolons.  Words are split like a shell does, so
// text with spaces must be quoted.  The events are returned ordered by tick.
func parseScript(s string) ([]event, error) {
	var evs []event
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	for i, line := range lines {
		words, err := shellwords.Split(line)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", i+1, err)
		}
		if len(words) == 0 {
			continue
		}
		if len(words) != 4 || words[0] != "at" {
			return nil, fmt.Errorf("script line %d: expected \"at <tick> send|edge <arg>\", got %q", i+1, line)
		}

		ev := event{arg: words[3]}
		if ev.tick, err = strconv.ParseUint(words[1], 10, 64); err != nil {
			return nil, fmt.Errorf("script line %d: tick: %w", i+1, err)
		}
		switch words[2] {
		case "send":
			ev.act = actSend
		case "edge":
			ev.act = actEdge
		default:
			return nil, fmt.Errorf("script line %d: unknown action %q", i+1, words[2])
		}
		evs = append(evs, ev)
	}
	slices.SortStableFunc(evs, func(a, b event) int {
		switch {
		case a.tick < b.tick:
			return -1
		case a.tick > b.tick:
			return 1
		}
		return 0
	})
	return evs, nil
}

// schedule injects evs into b as the clock reaches their tick.  Events for
// tick zero happen on the first tick.
func schedule(b *demo.Board, evs []event) error {
	for _, ev := range evs {
		if ev.act == actEdge && ev.arg != b.Button.String() {
			return fmt.Errorf("script: no interrupt pin %s, try %s", ev.arg, b.Button)
		}
	}
	if len(evs) == 0 {
		return nil
	}

	b.MCU.Clock.Add(sim.TickerFunc(func(now uint64) {
		for len(evs) > 0 && evs[0].tick <= now {
			ev := evs[0]
			evs = evs[1:]
			switch ev.act {
			case actSend:
				log.Debug(log.ComponentCLI, "send", "tick", now, "text", ev.arg)
				b.Serial.Feed([]byte(ev.arg))
			case actEdge:
				log.Debug(log.ComponentCLI, "edge", "tick", now, "pin", ev.arg)
				b.Button.Set(!b.Button.Level())
			}
		}
	}))
	return nil
}
