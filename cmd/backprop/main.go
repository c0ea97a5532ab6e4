// Command backprop trains a small sigmoid network on a single synthetic
// input/expected pair and reports how far its output moved.
//
// To train: `go run ./cmd/backprop train --steps=1000 --report=out.npz`
//
// To verify gradients: `go run ./cmd/backprop gradcheck`
//
// Every flag can also be supplied through the environment as
// BACKPROP_<FLAG_NAME>, e.g. BACKPROP_LEARNING_RATE=0.1, optionally loaded
// from a file given by --env-file.  Flags on the command line win.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&TrainCommand{}, "")
	subcommands.Register(&GradCheckCommand{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
