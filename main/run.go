package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sgdlr/core/config"
	"sgdlr/node"
)

func initPipeline(cmd *cobra.Command) (*node.Pipeline, error) {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return nil, err
	}
	n := &node.Pipeline{}
	if err = n.Init(lc); err != nil {
		return nil, err
	}
	return n, nil
}

func run(cmd *cobra.Command) error {
	n, err := initPipeline(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "weight: %v bias: %v image: %s\n",
		res.Model.Weight, res.Model.Bias, res.Output)
	return nil
}

func train(cmd *cobra.Command) error {
	n, err := initPipeline(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.Train()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "weight: %v bias: %v accuracy: %.3f\n",
		res.Model.Weight, res.Model.Bias, res.Accuracy)
	return nil
}

func runCMD() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "train and plot",
		Long:  "train the classifier and write the scatter plot with its decision line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	attachFlags(runCmd, []string{"config", "output", "epochs"})
	return runCmd
}

func trainCMD() *cobra.Command {
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "train only",
		Long:  "train the classifier and print the learned weights, no image is written",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return train(cmd)
		},
	}
	attachFlags(trainCmd, []string{"config", "epochs"})
	return trainCmd
}
