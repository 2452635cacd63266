package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/fusion"
	"github.com/extractly/fusion/pkg/merge"
	"github.com/extractly/fusion/pkg/sources"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <document.yaml>...",
	Short: "Merge per-source product documents into one record",
	Long: `Merge reads one YAML document per extraction source and reconciles them
into a single product record. Each document names its source, an overall
confidence, and the partial product data that source extracted:

    source: jsonld
    confidence: 0.9
    data:
      name: "Example Widget"
      price:
        amount: 19.99
        currency: EUR

The merged record is printed as YAML, followed by the evidence log showing
which source and strategy produced each field.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("strategy", "s", "voting", "conflict-resolution strategy (priority, confidence, voting, consensus, first)")
	mergeCmd.Flags().Float64P("tolerance", "t", 0, "relative tolerance for numeric clustering (0.01 = 1%)")
	mergeCmd.Flags().IntP("consensus-count", "c", fusion.DefaultConsensusCount, "minimum agreeing sources for consensus")
	mergeCmd.Flags().String("weights", "", "YAML file with source weight overrides")
	mergeCmd.Flags().Bool("evidence", true, "print the evidence log")

	_ = viper.BindPFlag("strategy", mergeCmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag("tolerance", mergeCmd.Flags().Lookup("tolerance"))
	_ = viper.BindPFlag("consensus_count", mergeCmd.Flags().Lookup("consensus-count"))
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts, err := fusionOptions(cmd)
	if err != nil {
		return err
	}

	documents := make([]merge.Document, 0, len(args))
	for _, path := range args {
		doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		documents = append(documents, *doc)
	}

	result, err := merge.MergeContext(cmd.Context(), documents, opts)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(result.Product)
	if err != nil {
		return errors.WrapParse("yaml", "", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if showEvidence, _ := cmd.Flags().GetBool("evidence"); showEvidence {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), result.Evidence.String())
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	}

	return nil
}

// fusionOptions builds fusion options from flags, config, and environment.
func fusionOptions(cmd *cobra.Command) (fusion.Options, error) {
	strategy, _ := cmd.Flags().GetString("strategy")
	if !cmd.Flags().Changed("strategy") && viper.GetString("strategy") != "" {
		strategy = viper.GetString("strategy")
	}

	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	consensusCount, _ := cmd.Flags().GetInt("consensus-count")

	opts := fusion.Options{
		Strategy:       fusion.StrategyType(strategy),
		Tolerance:      tolerance,
		ConsensusCount: consensusCount,
	}

	if weightsPath, _ := cmd.Flags().GetString("weights"); weightsPath != "" {
		table, err := sources.LoadTable(weightsPath)
		if err != nil {
			return opts, err
		}
		opts.Weights = table
	}

	return opts, nil
}

// loadDocument reads a single source document from a YAML file.
func loadDocument(path string) (*merge.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var doc merge.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if doc.Source == "" {
		return nil, errors.NewValidationError("source", nil, "document "+path+" names no source")
	}

	return &doc, nil
}
