package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/extractly/fusion/pkg/errors"
	"github.com/extractly/fusion/pkg/fusion"
	"github.com/extractly/fusion/pkg/sources"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <candidates.yaml>",
	Short: "Fuse a raw candidate list into one value",
	Long: `Resolve reads a YAML list of candidates and fuses them into a single
value with the selected strategy:

    - value: "PEUGEOT"
      source: jsonld
      confidence: 0.9
    - value: "Peugeot"
      source: opengraph
      confidence: 0.7`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("strategy", "s", "voting", "conflict-resolution strategy")
	resolveCmd.Flags().Float64P("tolerance", "t", 0, "relative tolerance for numeric clustering")
	resolveCmd.Flags().IntP("consensus-count", "c", fusion.DefaultConsensusCount, "minimum agreeing sources for consensus")
	resolveCmd.Flags().String("weights", "", "YAML file with source weight overrides")
}

// candidateDoc is the YAML shape of one candidate.
type candidateDoc struct {
	Value      any        `yaml:"value"`
	Source     sources.ID `yaml:"source"`
	Confidence float64    `yaml:"confidence"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	opts, err := fusionOptions(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to read candidates %s: %w", args[0], err)
	}

	var docs []candidateDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return errors.WrapParse("yaml", args[0], err)
	}

	candidates := make([]fusion.Candidate, 0, len(docs))
	for _, d := range docs {
		candidates = append(candidates, fusion.Candidate{
			Value:      d.Value,
			Source:     d.Source,
			Confidence: d.Confidence,
		})
	}

	result, err := fusion.FuseContext(cmd.Context(), candidates, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "value:      %v\n", result.Value)
	fmt.Fprintf(cmd.OutOrStdout(), "source:     %s\n", result.Source)
	fmt.Fprintf(cmd.OutOrStdout(), "confidence: %.2f\n", result.Confidence)
	fmt.Fprintf(cmd.OutOrStdout(), "conflict:   %t\n", result.HadConflict)
	fmt.Fprintf(cmd.OutOrStdout(), "resolution: %s\n", result.Resolution)
	return nil
}
