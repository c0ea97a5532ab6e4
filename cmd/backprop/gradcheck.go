package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/ahmedtd/backprop/toolbox"
	"github.com/google/subcommands"
)

type GradCheckCommand struct {
	topology  topologyFlags
	seed      int64
	step      float64
	tolerance float64

	envFile string
}

var _ subcommands.Command = (*GradCheckCommand)(nil)

func (*GradCheckCommand) Name() string {
	return "gradcheck"
}

func (*GradCheckCommand) Synopsis() string {
	return "Compare backpropagated gradients against finite differences"
}

func (*GradCheckCommand) Usage() string {
	return ``
}

func (c *GradCheckCommand) SetFlags(f *flag.FlagSet) {
	c.topology.SetFlags(f, toolbox.Topology{
		InputSize:        1,
		HiddenSize:       2,
		OutputSize:       1,
		HiddenLayerCount: 1,
	})
	f.Int64Var(&c.seed, "seed", 12345, "Seed for parameter initialization and the synthetic data")
	f.Float64Var(&c.step, "step", 1e-3, "Finite difference step")
	f.Float64Var(&c.tolerance, "tolerance", 1e-2, "Largest acceptable absolute disagreement")

	f.StringVar(&c.envFile, "env-file", "", "Optional .env file with BACKPROP_* flag defaults")
}

func (c *GradCheckCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

func (c *GradCheckCommand) executeErr(ctx context.Context) error {
	top, err := c.topology.Topology()
	if err != nil {
		return fmt.Errorf("while building topology: %w", err)
	}

	r := rand.New(rand.NewSource(c.seed))
	net, err := toolbox.MakeNetwork(top, r)
	if err != nil {
		return fmt.Errorf("while initializing network: %w", err)
	}
	input := toolbox.RandomVector(top.InputSize, r)
	expected := toolbox.RandomVector(top.OutputSize, r)

	check, err := toolbox.CheckGradients(net, input, expected, c.step)
	if err != nil {
		return fmt.Errorf("while checking gradients: %w", err)
	}

	log.Printf("checked %d parameters of %s, max abs diff %g at parameter %d (numeric=%g analytic=%g)",
		len(check.Numeric), top, check.MaxAbsDiff, check.Parameter,
		check.Numeric[check.Parameter], check.Analytic[check.Parameter])

	if check.MaxAbsDiff > c.tolerance {
		return fmt.Errorf("gradient disagreement %g exceeds tolerance %g", check.MaxAbsDiff, c.tolerance)
	}
	return nil
}
