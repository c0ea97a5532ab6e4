package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/ahmedtd/backprop/toolbox"
	"github.com/google/subcommands"
)

type TrainCommand struct {
	topology     topologyFlags
	learningRate float64
	steps        int
	seed         int64
	logEvery     int

	reportFile string
	envFile    string
}

var _ subcommands.Command = (*TrainCommand)(nil)

func (*TrainCommand) Name() string {
	return "train"
}

func (*TrainCommand) Synopsis() string {
	return "Train the network on a synthetic input/expected pair"
}

func (*TrainCommand) Usage() string {
	return ``
}

func (c *TrainCommand) SetFlags(f *flag.FlagSet) {
	c.topology.SetFlags(f, toolbox.Topology{
		InputSize:        2,
		HiddenSize:       10,
		OutputSize:       5,
		HiddenLayerCount: 2,
	})
	f.Float64Var(&c.learningRate, "learning-rate", 0.3, "Gradient descent step size")
	f.IntVar(&c.steps, "steps", 1000, "Number of training iterations")
	f.Int64Var(&c.seed, "seed", 12345, "Seed for parameter initialization and the synthetic input")
	f.IntVar(&c.logEvery, "log-every", 100, "Log the cost every N steps (0 disables)")

	f.StringVar(&c.reportFile, "report", "", "Path to write first/last/expected outputs (npz format)")
	f.StringVar(&c.envFile, "env-file", "", "Optional .env file with BACKPROP_* flag defaults")
}

func (c *TrainCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := applyEnvDefaults(f, c.envFile); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitUsageError
	}
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *TrainCommand) executeErr(ctx context.Context) error {
	top, err := c.topology.Topology()
	if err != nil {
		return fmt.Errorf("while building topology: %w", err)
	}
	lp, err := toolbox.NewLearningParameters(float32(c.learningRate))
	if err != nil {
		return fmt.Errorf("while building learning parameters: %w", err)
	}

	r := rand.New(rand.NewSource(c.seed))

	net, err := toolbox.MakeNetwork(top, r)
	if err != nil {
		return fmt.Errorf("while initializing network: %w", err)
	}

	input := toolbox.RandomVector(top.InputSize, r)
	expected := toolbox.MakeAF32(top.OutputSize)
	for i := range expected.V {
		expected.V[i] = float32(i) / float32(top.OutputSize)
	}

	log.Printf("Training %s with %d parameters for %d steps", top, net.NumParameters(), c.steps)

	tr := &toolbox.Trainer{
		Network:            net,
		LearningParameters: lp,
		LogEvery:           c.logEvery,
		Logger:             log.Default(),
	}
	report, err := tr.Train(input, expected, c.steps)
	if err != nil {
		return fmt.Errorf("while training: %w", err)
	}

	log.Printf("First output: %v (distance %.4f)", report.First.V, report.FirstDistance())
	log.Printf("Last output: %v (distance %.4f)", report.Last.V, report.LastDistance())
	log.Printf("Expected output: %v", report.Expected.V)
	log.Printf("timings overall=%.3f forward=%.3f backprop=%.3f weightupdate=%.3f",
		tr.Timings.Overall.Seconds(),
		tr.Timings.Forward.Seconds(),
		tr.Timings.Backpropagation.Seconds(),
		tr.Timings.WeightUpdate.Seconds(),
	)

	if c.reportFile != "" {
		if err := c.writeReport(report); err != nil {
			return fmt.Errorf("while writing report: %w", err)
		}
	}

	return nil
}

func (c *TrainCommand) writeReport(report *toolbox.TrainingReport) error {
	f, err := os.Create(c.reportFile)
	if err != nil {
		return fmt.Errorf("while creating report file: %w", err)
	}
	defer f.Close()

	if err := report.WriteNPZ(f); err != nil {
		return err
	}

	return f.Close()
}
