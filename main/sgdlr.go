package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sgdlr/core/ml"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag string
	outputFlag  string
	epochsFlag  int
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "",
		"config file, default: $SGDLR_CFG_PATH/sgdlr_config.yaml")
	flags.StringVarP(&outputFlag, "output", "o", "picture.png",
		"image file the scatter plot and decision line are written to")
	flags.IntVarP(&epochsFlag, "epochs", "e", ml.DefaultEpochs,
		"number of passes over the dataset")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("Could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:          "sgdlr",
		Short:        "logistic classifier demo",
		Long:         "train a logistic classifier on a fixed 2-D point set and plot its decision boundary",
		SilenceUsage: true,
	}
	mainCmd.AddCommand(runCMD())
	mainCmd.AddCommand(trainCMD())
	return mainCmd
}

func main() {
	if newMainCmd().Execute() != nil {
		os.Exit(1)
	}
}
