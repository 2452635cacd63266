package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extractly/fusion/pkg/fusion"
	"github.com/extractly/fusion/pkg/sources"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the source reliability weight table",
	RunE:  runWeights,
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available conflict-resolution strategies",
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(strategiesCmd)

	weightsCmd.Flags().String("weights", "", "YAML file with source weight overrides")
}

func runWeights(cmd *cobra.Command, _ []string) error {
	table := sources.DefaultTable()

	if path, _ := cmd.Flags().GetString("weights"); path != "" {
		loaded, err := sources.LoadTable(path)
		if err != nil {
			return err
		}
		table = loaded
	}

	for _, id := range sources.IDs() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %.2f\n", id, table.Weight(id))
	}
	return nil
}

func runStrategies(cmd *cobra.Command, _ []string) error {
	for _, typ := range fusion.Strategies() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", typ, typ.Name())
	}
	return nil
}
