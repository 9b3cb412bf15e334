// Firmware entry point: wire the board, the transport and the command
// table, then hand over to the console loop.
package main

import (
	"picocli-go/cli"
	"picocli-go/commands"
	"picocli-go/config"
	"picocli-go/core1"
	"picocli-go/device"
	"picocli-go/program"
	"picocli-go/serialio"
)

const board = "pico"

func main() {
	settings := config.Load(board)

	dev, err := device.Open()
	if err != nil {
		panic(err)
	}

	tr := serialio.New(serialio.OpenPort())

	queue := core1.NewQueue()
	reg := cli.NewRegistry()
	commands.Register(reg, commands.Deps{
		Dev:      dev,
		Console:  tr,
		Queue:    queue,
		Settings: settings,
	})

	stop := make(chan struct{}) // firmware runs until power-off

	p := program.New(dev, tr, cli.New(reg), settings)
	p.Init(stop)

	// worker starts after Init so its logging sees the final output
	if id, err := dev.Pins.GPIO("C1_OUT_A"); err == nil {
		if out, err := dev.Output(id); err == nil {
			core1.NewWorker(queue, out).Start(stop)
		}
	}

	p.Run(stop)
}
