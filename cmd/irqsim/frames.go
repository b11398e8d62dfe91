package main

import (
	"fmt"

	"github.com/sigurn/crc8"

	"github.com/clktmr/asyncirq/internal/log"
	"github.com/clktmr/asyncirq/sim"
)

var frameCRC8 = crc8.MakeTable(crc8.CRC8)

func frameChecksum(buf []byte) uint8 {
	return crc8.Checksum(buf, frameCRC8)
}

// logFrames logs every transmitted frame of u with its checksum.
func logFrames(u *sim.USART) {
	u.Tx.OnTransfer = func(buf []byte, failed bool) {
		log.Info(log.ComponentUSART, "frame",
			"data", fmt.Sprintf("%q", buf),
			"crc8", fmt.Sprintf("%#02x", frameChecksum(buf)),
			"failed", failed)
	}
}
