package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ahmedtd/backprop/toolbox"
	"github.com/joho/godotenv"
)

const envPrefix = "BACKPROP_"

// envName maps a flag name like "learning-rate" to BACKPROP_LEARNING_RATE.
func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnvDefaults fills every flag of f that was not set on the command line
// from its BACKPROP_ environment variable.  If envFile is non-empty it is
// loaded first; variables already present in the environment take
// precedence over the file.
func applyEnvDefaults(f *flag.FlagSet, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("while loading env file %s: %w", envFile, err)
		}
	}

	explicit := map[string]bool{}
	f.Visit(func(fl *flag.Flag) {
		explicit[fl.Name] = true
	})

	var err error
	f.VisitAll(func(fl *flag.Flag) {
		if err != nil || explicit[fl.Name] {
			return
		}
		v, ok := os.LookupEnv(envName(fl.Name))
		if !ok {
			return
		}
		if setErr := f.Set(fl.Name, v); setErr != nil {
			err = fmt.Errorf("while applying %s=%q: %w", envName(fl.Name), v, setErr)
		}
	})
	return err
}

// topologyFlags registers the four topology flags shared by every command.
type topologyFlags struct {
	inputSize    int
	hiddenSize   int
	outputSize   int
	hiddenLayers int
}

func (tf *topologyFlags) SetFlags(f *flag.FlagSet, defaults toolbox.Topology) {
	f.IntVar(&tf.inputSize, "input-size", defaults.InputSize, "Width of the input layer")
	f.IntVar(&tf.hiddenSize, "hidden-size", defaults.HiddenSize, "Width of each hidden layer")
	f.IntVar(&tf.outputSize, "output-size", defaults.OutputSize, "Width of the output layer")
	f.IntVar(&tf.hiddenLayers, "hidden-layers", defaults.HiddenLayerCount, "Number of hidden layers")
}

func (tf *topologyFlags) Topology() (toolbox.Topology, error) {
	return toolbox.NewTopology(tf.inputSize, tf.hiddenSize, tf.outputSize, tf.hiddenLayers)
}
